package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/udisondev/armorbench/internal/actor"
	"github.com/udisondev/armorbench/internal/db"
	"github.com/udisondev/armorbench/internal/model"
	"github.com/udisondev/armorbench/internal/remap"
	"github.com/udisondev/armorbench/internal/session"
	"github.com/udisondev/armorbench/internal/slot"
	"github.com/udisondev/armorbench/internal/tick"
)

// command — разобранные флаги одного запуска.
type command struct {
	configPath string
	sessionID  string

	mod          string
	listMods     bool
	hideModified bool

	name            string
	slots           string
	reverse         bool
	exact           bool
	bitwise         bool
	excludeModified bool
	allArmor        bool
	allWeapons      bool

	remap     string
	loadRemap bool
	view      string
	reference string

	equip   bool
	apply   bool
	deleteF string
	confirm string
}

func parseFlags(args []string) (command, error) {
	var c command
	fs := flag.NewFlagSet("armorbench", flag.ContinueOnError)

	fs.StringVar(&c.configPath, "config", "", "config path (overrides ARMORBENCH_CONFIG)")
	fs.StringVar(&c.sessionID, "session", "", "session UUID, key of the persisted remap table")

	fs.StringVar(&c.mod, "mod", "", "mod file to edit; empty lists worn armor")
	fs.BoolVar(&c.listMods, "mods", false, "list mod files with their ledger status")
	fs.BoolVar(&c.hideModified, "hide-modified-mods", false, "hide changed mods in -mods")

	fs.StringVar(&c.name, "name", "", "case-insensitive name filter")
	fs.StringVar(&c.slots, "slots", "", "comma-separated slots for the slot filter")
	fs.BoolVar(&c.reverse, "reverse", false, "slot filter: items without the slots")
	fs.BoolVar(&c.exact, "exact", false, "slot filter: items with exactly the slots")
	fs.BoolVar(&c.bitwise, "bitwise", false, "slot filter: treat the slots as one mask")
	fs.BoolVar(&c.excludeModified, "exclude-modified", false, "hide items already changed")
	fs.BoolVar(&c.allArmor, "all-armor", false, "list every armor item")
	fs.BoolVar(&c.allWeapons, "all-weapons", false, "list every weapon")

	fs.StringVar(&c.remap, "remap", "", "comma-separated SOURCE:TARGET pairs, target may be 'remove'")
	fs.BoolVar(&c.loadRemap, "load-remap", false, "start from the remap table persisted for -session")
	fs.StringVar(&c.view, "view", "", "list items occupying this slot")
	fs.StringVar(&c.reference, "reference", "", "file used to match weapons and ammo")

	fs.BoolVar(&c.equip, "equip", false, "give and equip the listed items")
	fs.BoolVar(&c.apply, "apply", false, "apply changes to the listed checked items")
	fs.StringVar(&c.deleteF, "delete", "", "delete every change recorded for this file")
	fs.StringVar(&c.confirm, "confirm", "", "repeat the -delete file name to confirm")

	if err := fs.Parse(args); err != nil {
		return c, err
	}
	return c, nil
}

// filterState builds the session filter from the flags.
func (c command) filterState() (session.FilterState, error) {
	f := session.FilterState{
		Name:            c.name,
		ExcludeModified: c.excludeModified,
		Reverse:         c.reverse,
		Exact:           c.exact,
		Bitwise:         c.bitwise,
		AllArmor:        c.allArmor,
		AllWeapons:      c.allWeapons,
	}
	if c.slots == "" {
		return f, nil
	}
	active, err := slot.ParseMask(splitList(c.slots))
	if err != nil {
		return f, fmt.Errorf("-slots: %w", err)
	}
	f.BySlot, f.Active = true, active
	return f, nil
}

// parseRemap parses "BODY:Feet,FX01:remove".
func parseRemap(s string) ([]remap.Entry, error) {
	var out []remap.Entry
	for _, pair := range splitList(s) {
		src, tar, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("remap %q: want SOURCE:TARGET", pair)
		}
		from, err := slot.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("remap %q: %w", pair, err)
		}
		to, err := slot.Parse(tar)
		if err != nil {
			return nil, fmt.Errorf("remap %q: %w", pair, err)
		}
		out = append(out, remap.Entry{Source: from, Target: to})
	}
	return out, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// bench executes one command against a session and prints the result.
type bench struct {
	sess   *session.Session
	queue  *tick.Queue
	player *actor.Player
	ledger *db.LedgerRepository // nil without a database
	out    io.Writer
}

func (b *bench) execute(ctx context.Context, c command) error {
	if c.deleteF != "" {
		if err := b.sess.DeleteChanges(c.deleteF, c.confirm); err != nil {
			return err
		}
		fmt.Fprintf(b.out, "changes of %s deleted, reverted after restart\n", c.deleteF)
		return b.saveLedger(ctx)
	}

	if c.listMods {
		b.sess.SetHideModifiedMods(c.hideModified)
		b.printMods()
		return nil
	}

	if err := b.sess.SelectMod(c.mod); err != nil {
		return fmt.Errorf("selecting mod %q: %w", c.mod, err)
	}
	f, err := c.filterState()
	if err != nil {
		return err
	}
	b.sess.SetFilter(f)

	if c.loadRemap {
		if err := b.sess.LoadRemap(ctx); err != nil {
			return err
		}
	}
	entries, err := parseRemap(c.remap)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := b.sess.PickUp(e.Source); err != nil {
			return fmt.Errorf("remap %s: %w", e, err)
		}
		if err := b.sess.Drop(e.Target); err != nil {
			return fmt.Errorf("remap %s: %w", e, err)
		}
	}

	b.printItems()
	b.printReport()

	if c.view != "" {
		s, err := slot.Parse(c.view)
		if err != nil {
			return fmt.Errorf("-view: %w", err)
		}
		fmt.Fprintf(b.out, "\nitems in %s:\n", s.Description())
		for _, it := range b.sess.ItemsInSlot(s) {
			fmt.Fprintf(b.out, "  %s\n", it.DisplayName())
		}
	}

	if c.equip {
		if err := b.equip(ctx); err != nil {
			return err
		}
	}

	if c.apply {
		n := len(b.sess.Checked())
		if err := b.sess.Apply(ctx); err != nil {
			return err
		}
		fmt.Fprintf(b.out, "\napplied %d items from %s\n", n, b.sess.Mod())
		if err := b.saveLedger(ctx); err != nil {
			return err
		}
		if len(b.sess.Remap()) > 0 {
			if err := b.sess.SaveRemap(ctx); err != nil && !errors.Is(err, session.ErrNoRemapStore) {
				return err
			}
		}
	}

	return nil
}

// equip schedules the equips and waits for the tick loop to run them.
func (b *bench) equip(ctx context.Context) error {
	n, err := b.sess.Equip()
	if err != nil {
		return err
	}

	// Tasks run FIFO, so the marker fires after every equip scheduled above.
	done := make(chan struct{})
	b.queue.AddTask(func() { close(done) })
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
	}

	fmt.Fprintf(b.out, "\nequipped %d items, worn now:\n", n)
	for _, it := range b.player.WornItems() {
		fmt.Fprintf(b.out, "  %-40s %s\n", it.DisplayName(), it.SlotMask())
	}
	return nil
}

func (b *bench) saveLedger(ctx context.Context) error {
	if b.ledger == nil {
		return nil
	}
	return b.ledger.Save(ctx, b.sess.Ledger())
}

func (b *bench) printMods() {
	w := tabwriter.NewWriter(b.out, 0, 4, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "FILE\tSTATUS")
	for _, m := range b.sess.Mods() {
		fmt.Fprintf(w, "%s\t%s\n", m.File, m.Status)
	}
}

func (b *bench) printItems() {
	w := tabwriter.NewWriter(b.out, 0, 4, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "ITEM\tFORM\tSLOTS\tSTATE\tCHANGES")
	for _, it := range b.sess.Items() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			it.DisplayName(), it.FormID(), slotLabels(it), b.itemState(it), b.changeMark(it))
	}
}

func (b *bench) itemState(it *model.Item) string {
	switch {
	case b.sess.Ledger().IsModifiedExclusive(it):
		return "modified"
	case b.sess.Ledger().IsModifiedShared(it):
		return "modified (shared)"
	default:
		return "-"
	}
}

func (b *bench) changeMark(it *model.Item) string {
	if b.sess.WillBeModified(it) {
		return "will change"
	}
	return ""
}

func slotLabels(it *model.Item) string {
	if !it.IsArmor() {
		return it.Category().String()
	}
	labels := make([]string, 0, 4)
	for _, s := range it.SlotMask().Slots() {
		labels = append(labels, s.Label())
	}
	return strings.Join(labels, "|")
}

func (b *bench) printReport() {
	rep := b.sess.Report()
	fmt.Fprintf(b.out, "\nslots used %s, remapped %s -> %s\n", rep.Used, rep.RemappedSrc, rep.RemappedTar)

	for _, e := range b.sess.Remap() {
		fmt.Fprintf(b.out, "  %s\n", e)
	}
	for _, s := range slot.Each() {
		if tip := rep.SourceTooltip(s); tip != "" {
			fmt.Fprintf(b.out, "  %s: %s\n", s.Description(), tip)
		}
		if tip := rep.TargetTooltip(s); tip != "" {
			fmt.Fprintf(b.out, "  -> %s: %s\n", s.Description(), tip)
		}
	}
	if b.sess.SlotWarning() {
		fmt.Fprintln(b.out, "  some checked items use slots that are neither handled nor remapped")
	}
}
