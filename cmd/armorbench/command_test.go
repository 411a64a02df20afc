package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/armorbench/internal/actor"
	"github.com/udisondev/armorbench/internal/data"
	"github.com/udisondev/armorbench/internal/ledger"
	"github.com/udisondev/armorbench/internal/remap"
	"github.com/udisondev/armorbench/internal/session"
	"github.com/udisondev/armorbench/internal/slot"
	"github.com/udisondev/armorbench/internal/tick"
)

func newBench(t *testing.T) (*bench, *bytes.Buffer) {
	t.Helper()

	cat := data.SampleCatalog()
	led := ledger.New()
	queue := tick.NewQueue()
	player := actor.NewPlayer("player")
	handled := slot.Union(slot.Head, slot.Body, slot.Hands, slot.Feet, slot.Shield, slot.Circlet)

	sess, err := session.New(session.Options{Handled: handled, Interacted: handled}, session.Deps{
		Catalog:     cat,
		Ledger:      led,
		Tasks:       queue,
		Actor:       player,
		Host:        idleHost{},
		Transformer: session.NewRecorder(led, cat, "Skyrim.esm", handled),
	})
	require.NoError(t, err)

	var out bytes.Buffer
	return &bench{sess: sess, queue: queue, player: player, out: &out}, &out
}

func TestParseFlags(t *testing.T) {
	c, err := parseFlags([]string{"-mod", "Skyrim.esm", "-slots", "BODY, feet", "-exact", "-remap", "BODY:Circlet,FX01:remove"})
	require.NoError(t, err)

	f, err := c.filterState()
	require.NoError(t, err)
	assert.True(t, f.BySlot)
	assert.True(t, f.Exact)
	assert.Equal(t, slot.Union(slot.Body, slot.Feet), f.Active)

	entries, err := parseRemap(c.remap)
	require.NoError(t, err)
	assert.Equal(t, []remap.Entry{
		{Source: slot.Body, Target: slot.Circlet},
		{Source: slot.FX01, Target: slot.Remove},
	}, entries)

	_, err = parseFlags([]string{"-nope"})
	assert.Error(t, err)
}

func TestParseRemap_Errors(t *testing.T) {
	for _, in := range []string{"BODY", "TORSO:Feet", "BODY:TORSO"} {
		_, err := parseRemap(in)
		assert.Error(t, err, in)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  string
	}{
		{"debug", "debug", "DEBUG"},
		{"warn", "warn", "WARN"},
		{"error", "error", "ERROR"},
		{"empty", "", "INFO"},
		{"unknown", "verbose", "INFO"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.level).String())
		})
	}
}

func TestBench_ListAndReport(t *testing.T) {
	b, out := newBench(t)

	err := b.execute(context.Background(), command{mod: "Capes.esp", remap: "FX01:remove", view: "HEAD"})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Traveler Cloak")
	assert.Contains(t, text, "Capes.esp:0001000d62")
	assert.Contains(t, text, "Slot 61 - ??? -> <REMOVE SLOT>")
	assert.Contains(t, text, "some checked items use slots that are neither handled nor remapped")
	assert.Contains(t, text, "items in Slot 30 - Head")
}

func TestBench_ApplyAndDelete(t *testing.T) {
	b, out := newBench(t)

	err := b.execute(context.Background(), command{mod: "Capes.esp", remap: "FX01:remove", apply: true})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "applied 2 items from Capes.esp")
	assert.Equal(t, ledger.FileChanged, b.sess.Ledger().FileStatus("Capes.esp"))

	err = b.execute(context.Background(), command{deleteF: "Capes.esp"})
	assert.ErrorIs(t, err, session.ErrNotConfirmed)

	err = b.execute(context.Background(), command{deleteF: "Capes.esp", confirm: "Capes.esp"})
	require.NoError(t, err)
	assert.Equal(t, ledger.FileDeleted, b.sess.Ledger().FileStatus("Capes.esp"))

	out.Reset()
	require.NoError(t, b.execute(context.Background(), command{listMods: true}))
	assert.Contains(t, out.String(), "Capes.esp")
	assert.Contains(t, out.String(), ledger.FileDeleted.String())
}

func TestBench_Equip(t *testing.T) {
	b, out := newBench(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go func() { _ = b.queue.Start(ctx, time.Millisecond) }()
	defer b.queue.Stop()

	err := b.execute(ctx, command{mod: "Skyrim.esm", name: "iron", equip: true})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "equipped 4 items")
	assert.Len(t, b.player.WornItems(), 4)
}
