// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package templateform maintains the dynamic file-slot editor backing the
// template marketplace screens. Slots carry locally-unique ids that stay
// stable across add/remove for the lifetime of a form session; the ids exist
// only for keyed rendering and are never persisted.
package templateform

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/learnsphere/admin-console/internal/upload"
)

// Slot is one template file upload slot. Existing holds the opaque server
// record for a file already attached to the template in edit mode.
type Slot struct {
	ID       int
	File     *upload.FileRef
	Existing json.RawMessage
}

// Template holds the scalar marketplace fields plus the cover image.
type Template struct {
	Name        string
	Description string
	Price       string

	Cover         *upload.FileRef
	ExistingCover string
}

// NewSlots returns the initial slot list: a single empty slot with id 0.
func NewSlots() []Slot {
	return []Slot{{ID: 0}}
}

// SlotsFromExisting seeds the editor from a template's stored file records
// for edit-mode round-trips. An empty record list still yields one blank
// slot.
func SlotsFromExisting(files []json.RawMessage) []Slot {
	if len(files) == 0 {
		return NewSlots()
	}
	slots := make([]Slot, len(files))
	for i, f := range files {
		slots[i] = Slot{ID: i, Existing: f}
	}
	return slots
}

// AddSlot appends a new empty slot. The id is one past the highest id ever
// used so ids never collide after removals.
func AddSlot(slots []Slot) []Slot {
	next := 0
	for _, s := range slots {
		if s.ID >= next {
			next = s.ID + 1
		}
	}
	out := make([]Slot, len(slots), len(slots)+1)
	copy(out, slots)
	return append(out, Slot{ID: next})
}

// RemoveSlot removes the slot with the given id. The last remaining slot is
// never removed; the UI disables the control at one slot so the refusal is
// not user-visible.
func RemoveSlot(slots []Slot, id int) []Slot {
	if len(slots) <= 1 {
		return slots
	}
	out := make([]Slot, 0, len(slots)-1)
	for _, s := range slots {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}

// SetSlotFile attaches a file to the slot with the given id, returning a new
// slice with every other slot unchanged.
func SetSlotFile(slots []Slot, id int, f *upload.FileRef) []Slot {
	out := make([]Slot, len(slots))
	copy(out, slots)
	for i := range out {
		if out[i].ID == id {
			out[i].File = f
			break
		}
	}
	return out
}

// HasFile reports whether at least one slot carries a new upload.
func HasFile(slots []Slot) bool {
	for _, s := range slots {
		if s.File != nil {
			return true
		}
	}
	return false
}

// Field and part names expected by the template endpoints. file0 is reserved
// for the cover image; slot files follow as file1..fileN in slot order.
const (
	FieldName        = "templateName"
	FieldDescription = "templateDescription"
	FieldPrice       = "templatePrice"
	FieldFileCount   = "fileCount"
	PartCover        = "file0"
)

// ToWireFormat maps the form state to the multipart fields and file parts
// the template endpoints expect. Slot files are numbered densely from file1
// in slot order; kept existing files are echoed back as existingFile{id+1}
// JSON fields so the backend can tell kept from removed.
func ToWireFormat(t Template, slots []Slot) (map[string]string, []upload.Part) {
	price := t.Price
	if price == "" {
		price = "0"
	}
	fields := map[string]string{
		FieldName:        t.Name,
		FieldDescription: t.Description,
		FieldPrice:       price,
		FieldFileCount:   strconv.Itoa(len(slots)),
	}

	var parts []upload.Part
	if t.Cover != nil {
		parts = append(parts, upload.Part{Field: PartCover, File: *t.Cover})
	}

	fileIndex := 1
	for _, s := range slots {
		if s.File != nil {
			parts = append(parts, upload.Part{Field: fmt.Sprintf("file%d", fileIndex), File: *s.File})
			fileIndex++
		}
		if s.Existing != nil {
			fields[fmt.Sprintf("existingFile%d", s.ID+1)] = string(s.Existing)
		}
	}

	return fields, parts
}

// Validate checks the form state before submission. requireFiles is set on
// create, where at least one template file must be attached; edits may keep
// only existing files.
func Validate(t Template, slots []Slot, requireFiles bool) map[string]string {
	errs := make(map[string]string)
	if t.Name == "" {
		errs["templateName"] = "Template name is required"
	}
	if t.Price != "" {
		if _, err := strconv.ParseFloat(t.Price, 64); err != nil {
			errs["templatePrice"] = "Price must be a number"
		}
	}
	if requireFiles && !HasFile(slots) {
		errs["files"] = "Please select at least one template file"
	}
	return errs
}
