/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package view

// Tab names a page panel. The panel's element ID is the name plus "-section".
type Tab string

const (
	TabUpload Tab = "upload"
	TabLookup Tab = "lookup"

	DefaultTab = TabUpload
)

var tabOrder = []struct {
	name  Tab
	label string
}{
	{name: TabUpload, label: "Upload & Analyze"},
	{name: TabLookup, label: "Patient Reports"},
}

// TabControl is one clickable tab.
type TabControl struct {
	Name   Tab
	Label  string
	Active bool
}

// Section is one toggleable panel.
type Section struct {
	ID     string
	Active bool
}

// Tabs is the active-state of every tab control and panel on the page.
type Tabs struct {
	Controls []TabControl
	Sections []Section
}

// SectionID returns the element ID of the panel for tab.
func SectionID(tab Tab) string {
	return string(tab) + "-section"
}

// ParseTab maps a query value to a tab. An empty value selects the default;
// any other value is kept as given, even if no such tab exists.
func ParseTab(raw string) Tab {
	if raw == "" {
		return DefaultTab
	}

	return Tab(raw)
}

// Activate clears every control and panel, then marks the control named tab
// and the panel "{tab}-section" active. An unknown tab leaves everything
// unmarked.
func Activate(tab Tab) Tabs {
	t := Tabs{
		Controls: make([]TabControl, 0, len(tabOrder)),
		Sections: make([]Section, 0, len(tabOrder)),
	}

	target := SectionID(tab)

	for _, entry := range tabOrder {
		t.Controls = append(t.Controls, TabControl{
			Name:   entry.name,
			Label:  entry.label,
			Active: entry.name == tab,
		})

		id := SectionID(entry.name)
		t.Sections = append(t.Sections, Section{ID: id, Active: id == target})
	}

	return t
}

// SectionActive reports whether the panel for the named tab is active.
func (t Tabs) SectionActive(name string) bool {
	id := SectionID(Tab(name))
	for _, s := range t.Sections {
		if s.ID == id {
			return s.Active
		}
	}

	return false
}

// ActiveCount returns the number of active controls and panels.
func (t Tabs) ActiveCount() (controls, sections int) {
	for _, c := range t.Controls {
		if c.Active {
			controls++
		}
	}

	for _, s := range t.Sections {
		if s.Active {
			sections++
		}
	}

	return controls, sections
}
