package model

import (
	"image"
	"testing"
)

func TestCropModel_RecordsValidCrops(t *testing.T) {
	m := NewCropModel()
	m.RecordCrop(image.Rect(10, 10, 50, 40))
	if m.Count() != 1 {
		t.Fatalf("count = %d, want 1", m.Count())
	}
	if got := m.Last(); got != image.Rect(10, 10, 50, 40) {
		t.Fatalf("last = %v", got)
	}
}

func TestCropModel_IgnoresDegenerate(t *testing.T) {
	m := NewCropModel()
	m.RecordCrop(image.Rectangle{})
	m.RecordCrop(image.Rect(5, 5, 5, 10))
	if m.Count() != 0 {
		t.Fatalf("count = %d, want 0", m.Count())
	}
}

func TestEditModel_Toggle(t *testing.T) {
	var m EditModel
	if m.Enabled() {
		t.Fatal("zero value should be disabled")
	}
	m.SetEnabled(true)
	if !m.Enabled() {
		t.Fatal("expected enabled")
	}
	m.SetEnabled(true) // no change path
	m.SetEnabled(false)
	if m.Enabled() {
		t.Fatal("expected disabled")
	}
}
