// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"path/filepath"
	"strings"
)

// DefaultSpecialty is assigned when no rule matches.
const DefaultSpecialty = "General"

// priorityRules are checked before FolderRules.
var priorityRules = []Rule{
	{"estudios pivotales", "Estudios Pivotales"},
	{"continuum", "Continuum"},
}

// FolderRules maps folder-name substrings to specialties. Order matters:
// "uci-medicina crítica" is tested before "uci", and "hematología" before
// "hematología y oncología".
var FolderRules = []Rule{
	{"geriatría", "Geriatría"},
	{"cardiología", "Cardiología"},
	{"neurología", "Neurología"},
	{"nefrología", "Nefrología"},
	{"endocrinología", "Endocrinología"},
	{"uci-medicina crítica", "UCI-Medicina Crítica"},
	{"uci", "UCI-Medicina Crítica"},
	{"infectología", "Infectología"},
	{"hematología", "Hematología"},
	{"hematología y oncología", "Hematología"},
	{"gastroenterología", "Gastroenterología"},
	{"neumología", "Neumología"},
	{"reumatología", "Reumatología"},
	{"psiquiatría", "Psiquiatría"},
	{"ortogeriatría", "Ortogeriatría"},
	{"pediatría", "Pediatría"},
	{"dermatología", "Dermatología"},
	{"oftalmología", "General"},
	{"otorrinolaringología", "General"},
	{"cirugía", "General"},
	{"medicina interna", "General"},
	{"atención primaria", "General"},
	{"bioestadística", "General"},
	{"paliativos", "Geriatría"},
	{"transversales", "General"},
	{"continuum", "Continuum"},
	{"estudios pivotales", "Estudios Pivotales"},
	{"mksap", "General"},
}

// FilenameRules refine the specialty of extracted documents using the
// file name, whose prefixes abbreviate a specialty. Each rule lists
// alternatives; the first rule with any alternative present wins.
var FilenameRules = []struct {
	Substrings []string
	Label      string
}{
	{[]string{"bronco", "ira"}, "Neumología"},
	{[]string{"cardio"}, "Cardiología"},
	{[]string{"dermato"}, "General"},
	{[]string{"endocrino"}, "Endocrinología"},
	{[]string{"hemato"}, "Hematología"},
	{[]string{"neuro"}, "Neurología"},
	{[]string{"nefro"}, "Nefrología"},
}

// Specialty classifies a source path by its folder names.
func Specialty(path string) string {
	p := fold(path)
	if label, ok := firstRule(priorityRules, p); ok {
		return label
	}
	if label, ok := firstRule(FolderRules, p); ok {
		return label
	}
	return DefaultSpecialty
}

// ExtractedSpecialty classifies a document that went through text
// extraction: the path rules apply first, then a matching file-name rule
// overrides them.
func ExtractedSpecialty(path string) string {
	specialty := Specialty(path)
	base := filepath.Base(path)
	name := fold(base[:len(base)-len(filepath.Ext(base))])
	for _, r := range FilenameRules {
		for _, s := range r.Substrings {
			if strings.Contains(name, s) {
				return r.Label
			}
		}
	}
	return specialty
}
