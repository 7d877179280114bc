package capability

import (
	"context"
	"fmt"
	"strings"

	"github.com/madadgar-ai/madadgar/internal/logging"
	"github.com/madadgar-ai/madadgar/internal/tool"
)

// Health answers common medication questions from a local reference
// table. This is the one capability with no external collaborator: a
// single local lookup per invocation.
type Health struct {
	entries map[string]healthEntry
	log     *logging.Logger
}

type healthEntry struct {
	Name        string
	Description string
	Groups      []medicationGroup
	Precautions []string
}

type medicationGroup struct {
	Name        string
	Description string
	Examples    []string
}

// NewHealth creates the health info capability.
func NewHealth(log *logging.Logger) *Health {
	return &Health{
		entries: healthReference(),
		log:     log.Sub("capability.health"),
	}
}

// Spec returns the tool contract for the coordinator.
func (h *Health) Spec() *tool.Spec {
	return &tool.Spec{
		Name:        "health_info",
		Description: "Look up general information about common medications for a condition such as 'headache' or 'migraine'. Not medical advice.",
		Params: []tool.Param{
			{Name: "query", Type: tool.TypeString, Description: "Condition or symptom to look up", Required: true},
			{Name: "info_type", Type: tool.TypeString, Description: "Kind of information requested", Default: "medication"},
		},
		Handler: h.invoke,
	}
}

func (h *Health) invoke(_ context.Context, args tool.Args) tool.Result {
	query := strings.ToLower(args.String("query"))

	entry, ok := h.lookup(query)
	if !ok {
		return tool.Failf("No health information found for '%s'. Try a common condition like 'headache', 'migraine' or 'diabetes'.", args.String("query"))
	}

	// Fixed section order: name, description, medications, precautions.
	var b strings.Builder
	b.WriteString(entry.Name)
	b.WriteString("\n\n")
	b.WriteString(entry.Description)
	b.WriteString("\n\nMedications:\n")
	for _, g := range entry.Groups {
		fmt.Fprintf(&b, "• %s — %s\n", g.Name, g.Description)
		fmt.Fprintf(&b, "  Examples: %s\n", strings.Join(g.Examples, ", "))
	}
	b.WriteString("\nPrecautions:\n")
	for _, p := range entry.Precautions {
		fmt.Fprintf(&b, "• %s\n", p)
	}
	b.WriteString("\nThis is general information, not medical advice. Always consult a doctor.")
	return tool.OK(b.String())
}

// lookup matches the query against the table, first exactly and then
// by containment either way ("bad headache" finds "headache").
func (h *Health) lookup(query string) (healthEntry, bool) {
	if e, ok := h.entries[query]; ok {
		return e, true
	}
	for key, e := range h.entries {
		if strings.Contains(query, key) || strings.Contains(key, query) {
			return e, true
		}
	}
	return healthEntry{}, false
}

// healthReference is the local medication table, keyed by condition.
func healthReference() map[string]healthEntry {
	return map[string]healthEntry{
		"headache": {
			Name:        "Common Medications for Headache",
			Description: "Various medications can help with headache pain, depending on the type and severity.",
			Groups: []medicationGroup{
				{Name: "Pain relievers", Description: "For general headache pain", Examples: []string{"Acetaminophen (Tylenol)", "Ibuprofen (Advil)", "Aspirin"}},
				{Name: "Migraine medications", Description: "For migraine headaches", Examples: []string{"Sumatriptan", "Rizatriptan"}},
			},
			Precautions: []string{
				"Some medications may interact with other drugs",
				"Follow dosage instructions carefully",
				"Seek immediate medical attention if headache is severe or persistent",
			},
		},
		"migraine": {
			Name:        "Common Medications for Migraine",
			Description: "Migraine treatments can include both preventive and acute medications.",
			Groups: []medicationGroup{
				{Name: "Acute treatments", Description: "Medications taken when a migraine attack begins", Examples: []string{"Sumatriptan (Imitrex)", "Rizatriptan (Maxalt)", "Eletriptan (Relpax)"}},
				{Name: "Pain relievers", Description: "For mild to moderate migraine pain", Examples: []string{"Acetaminophen (Tylenol)", "Ibuprofen (Advil)", "Naproxen (Aleve)"}},
				{Name: "Anti-nausea medications", Description: "For migraine-related nausea", Examples: []string{"Metoclopramide", "Prochlorperazine"}},
			},
			Precautions: []string{
				"Keep a migraine diary to track triggers and treatment effectiveness",
				"Some medications may interact with other drugs",
				"Seek immediate medical attention if symptoms are severe",
			},
		},
		"abdominal pain": {
			Name:        "Common Medications for Abdominal Pain",
			Description: "Various medications can help with abdominal pain, depending on the cause.",
			Groups: []medicationGroup{
				{Name: "Antacids", Description: "For acid-related pain and heartburn", Examples: []string{"Tums", "Rolaids", "Maalox"}},
				{Name: "Anti-spasmodics", Description: "For cramping and spasms", Examples: []string{"Hyoscyamine", "Dicyclomine"}},
				{Name: "Pain relievers", Description: "For general pain relief", Examples: []string{"Acetaminophen (Tylenol)", "Ibuprofen (Advil)"}},
			},
			Precautions: []string{
				"Some medications may interact with other drugs",
				"Seek immediate medical attention if pain is severe or persistent",
			},
		},
		"diabetes": {
			Name:        "Common Medications for Diabetes",
			Description: "Diabetes management involves various medications to control blood sugar levels.",
			Groups: []medicationGroup{
				{Name: "Insulin", Description: "For type 1 diabetes and some type 2 cases", Examples: []string{"Regular insulin", "NPH insulin", "Insulin glargine"}},
				{Name: "Oral medications", Description: "For type 2 diabetes", Examples: []string{"Metformin", "Sulfonylureas", "DPP-4 inhibitors"}},
			},
			Precautions: []string{
				"Regular blood sugar monitoring is essential",
				"Be aware of signs of low blood sugar",
				"Keep emergency glucose tablets handy",
			},
		},
		"hypertension": {
			Name:        "Common Medications for High Blood Pressure",
			Description: "Various medications are used to control high blood pressure.",
			Groups: []medicationGroup{
				{Name: "ACE inhibitors", Description: "Help relax blood vessels", Examples: []string{"Lisinopril", "Enalapril", "Ramipril"}},
				{Name: "Calcium channel blockers", Description: "Help relax blood vessel muscles", Examples: []string{"Amlodipine", "Diltiazem", "Verapamil"}},
				{Name: "Diuretics", Description: "Help remove excess water and salt", Examples: []string{"Hydrochlorothiazide", "Furosemide", "Spironolactone"}},
			},
			Precautions: []string{
				"Regular blood pressure monitoring",
				"Take medications at the same time daily",
				"Limit salt intake",
			},
		},
		"asthma": {
			Name:        "Common Medications for Asthma",
			Description: "Asthma treatment includes both rescue and controller medications.",
			Groups: []medicationGroup{
				{Name: "Quick-relief medications", Description: "For immediate symptom relief", Examples: []string{"Albuterol", "Levalbuterol", "Terbutaline"}},
				{Name: "Controller medications", Description: "For long-term control", Examples: []string{"Inhaled corticosteroids", "Long-acting beta agonists", "Leukotriene modifiers"}},
			},
			Precautions: []string{
				"Always carry a rescue inhaler",
				"Track symptoms and known triggers",
				"Seek immediate care for severe shortness of breath",
			},
		},
	}
}
