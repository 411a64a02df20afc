package slot

type info struct {
	label       string
	description string
}

// registry — статический каталог 32 слотов (engine slots 30..61).
var registry = [Count]info{
	{"HEAD", "Slot 30 - Head"},
	{"Hair", "Slot 31 - Hair"},
	{"BODY", "Slot 32 - Body"},
	{"Hands", "Slot 33 - Hands"},
	{"Forearms", "Slot 34 - Forearms"},
	{"Amulet", "Slot 35 - Amulet"},
	{"Ring", "Slot 36 - Ring"},
	{"Feet", "Slot 37 - Feet"},
	{"Calves", "Slot 38 - Calves"},
	{"SHIELD", "Slot 39 - Shield"},
	{"TAIL", "Slot 40 - Tail"},
	{"LongHair", "Slot 41 - Long Hair"},
	{"Circlet", "Slot 42 - Circlet"},
	{"Ears", "Slot 43 - Ears"},
	{"Unk1", "Slot 44 - Face"},
	{"Unk2", "Slot 45 - Neck"},
	{"Unk3", "Slot 46 - Chest"},
	{"Unk4", "Slot 47 - Back"},
	{"Unk5", "Slot 48 - ???"},
	{"Unk6", "Slot 49 - Pelvis"},
	{"DecapitateHead", "Slot 50 - Decapitated Head"},
	{"Decapitate", "Slot 51 - Decapitate"},
	{"Unk7", "Slot 52 - Lower body"},
	{"Unk8", "Slot 53 - Leg (right)"},
	{"Unk9", "Slot 54 - Leg (left)"},
	{"Unk10", "Slot 55 - Face2"},
	{"Unk11", "Slot 56 - Chest2"},
	{"Unk12", "Slot 57 - Shoulder"},
	{"Unk13", "Slot 58 - Arm (left)"},
	{"Unk14", "Slot 59 - Arm (right)"},
	{"Unk15", "Slot 60 - ???"},
	{"FX01", "Slot 61 - ???"},
}

// Named slots used across the code base.
const (
	Head     Slot = 0
	Hair     Slot = 1
	Body     Slot = 2
	Hands    Slot = 3
	Forearms Slot = 4
	Amulet   Slot = 5
	Ring     Slot = 6
	Feet     Slot = 7
	Calves   Slot = 8
	Shield   Slot = 9
	Tail     Slot = 10
	LongHair Slot = 11
	Circlet  Slot = 12
	Ears     Slot = 13
	FX01     Slot = 31
)

// Each returns all real slots in ascending order.
func Each() []Slot {
	out := make([]Slot, Count)
	for i := range out {
		out[i] = Slot(i)
	}
	return out
}
