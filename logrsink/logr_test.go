package logrsink

import (
	"errors"
	"testing"

	"github.com/philipp01105/logtree/core"
	"github.com/philipp01105/logtree/logger"
)

type capture struct {
	entries []*core.Entry
}

func (c *capture) sink(e *core.Entry) {
	c.entries = append(c.entries, e)
}

func newRoot(verbosity core.Level) (*logger.Logger, *capture) {
	c := &capture{}
	root := logger.New(c.sink)
	root.SetVerbosity(verbosity)
	return root, c
}

func TestSink_Info(t *testing.T) {
	root, c := newRoot(1)
	log := New(root).WithName("x").V(1).WithValues("req", "42")

	log.Info("hello")

	if len(c.entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(c.entries))
	}
	e := c.entries[0]
	if e.Name != "x" || e.Level != 1 || e.Message != "hello" || e.HasError {
		t.Errorf("Unexpected entry: %+v", e)
	}
	if len(e.Values) != 1 || e.Values["req"] != "42" {
		t.Errorf("Unexpected values: %v", e.Values)
	}
}

func TestSink_Enabled(t *testing.T) {
	root, c := newRoot(1)
	log := New(root)

	if !log.V(1).Enabled() {
		t.Error("V(1) should be enabled at verbosity 1")
	}
	if log.V(2).Enabled() {
		t.Error("V(2) should not be enabled at verbosity 1")
	}

	log.V(2).Info("hidden")
	if len(c.entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(c.entries))
	}
}

func TestSink_Error(t *testing.T) {
	root, c := newRoot(0)
	log := New(root).WithName("resolver")

	// Errors ignore V levels
	log.V(3).Error(errors.New("refused"), "lookup failed", "qname", "example.com.")

	if len(c.entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(c.entries))
	}
	e := c.entries[0]
	if !e.HasError || e.Error != "refused" || e.Level != 0 {
		t.Errorf("Unexpected entry: %+v", e)
	}
	if e.Name != "resolver" || e.Values["qname"] != "example.com." {
		t.Errorf("Unexpected entry: %+v", e)
	}
}

func TestSink_CallValuesWin(t *testing.T) {
	root, c := newRoot(0)
	log := New(root).WithValues("id", 1, "proto", "udp")

	log.Info("msg", "id", 2, "dangling")

	e := c.entries[0]
	want := map[string]string{"id": "2", "proto": "udp", "dangling": "<no-value>"}
	for k, v := range want {
		if e.Values[k] != v {
			t.Errorf("Values[%q] = %q, want %q", k, e.Values[k], v)
		}
	}
}

func TestSink_Node(t *testing.T) {
	root, _ := newRoot(0)
	s := NewSink(root)
	named := s.WithName("a").(*Sink)

	if named.Node().Parent() != root {
		t.Error("Expected derived node to point at root")
	}
	if s.WithValues() != s {
		t.Error("WithValues without pairs should return the same sink")
	}
}
