// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package templateform

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnsphere/admin-console/internal/upload"
)

func TestSlotIDsStayUniqueAcrossAddRemove(t *testing.T) {
	slots := NewSlots()
	slots = AddSlot(slots) // ids 0,1
	slots = AddSlot(slots) // ids 0,1,2
	slots = RemoveSlot(slots, 1)
	slots = AddSlot(slots)

	require.Len(t, slots, 3)
	seen := make(map[int]bool)
	for _, s := range slots {
		assert.False(t, seen[s.ID], "duplicate slot id %d", s.ID)
		seen[s.ID] = true
	}
	assert.Equal(t, 3, slots[2].ID, "new id is one past the highest ever used")
}

func TestRemoveSlotKeepsMinimumOfOne(t *testing.T) {
	slots := NewSlots()
	got := RemoveSlot(slots, 0)
	require.Len(t, got, 1, "last slot is never removed")
}

func TestSetSlotFile(t *testing.T) {
	slots := AddSlot(NewSlots())
	f := &upload.FileRef{Name: "theme.zip", Data: []byte{1}}

	got := SetSlotFile(slots, 1, f)
	assert.Nil(t, got[0].File)
	require.NotNil(t, got[1].File)
	assert.Equal(t, "theme.zip", got[1].File.Name)
	assert.Nil(t, slots[1].File, "original slice untouched")
}

func TestToWireFormat(t *testing.T) {
	tpl := Template{
		Name:  "Portfolio",
		Cover: &upload.FileRef{Name: "cover.png", Data: []byte{1}},
	}
	slots := []Slot{
		{ID: 0, File: &upload.FileRef{Name: "a.zip", Data: []byte{2}}},
		{ID: 1, Existing: json.RawMessage(`{"path":"files/old.zip"}`)},
		{ID: 2, File: &upload.FileRef{Name: "b.zip", Data: []byte{3}}},
	}

	fields, parts := ToWireFormat(tpl, slots)

	assert.Equal(t, "Portfolio", fields[FieldName])
	assert.Equal(t, "0", fields[FieldPrice], "blank price defaults to 0")
	assert.Equal(t, "3", fields[FieldFileCount])
	assert.Equal(t, `{"path":"files/old.zip"}`, fields["existingFile2"],
		"kept existing files echo back keyed by slot id")

	require.Len(t, parts, 3)
	assert.Equal(t, PartCover, parts[0].Field)
	assert.Equal(t, "file1", parts[1].Field)
	assert.Equal(t, "a.zip", parts[1].File.Name)
	assert.Equal(t, "file2", parts[2].Field, "slot files are numbered densely, skipping empty slots")
	assert.Equal(t, "b.zip", parts[2].File.Name)
}

func TestValidate(t *testing.T) {
	errs := Validate(Template{}, NewSlots(), true)
	assert.Contains(t, errs, "templateName")
	assert.Contains(t, errs, "files")

	errs = Validate(Template{Name: "x", Price: "abc"}, NewSlots(), false)
	assert.Contains(t, errs, "templatePrice")
	assert.NotContains(t, errs, "files")
}
