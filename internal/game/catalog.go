package game

// Key identifies a supported game by its PandaScore slug, which is also
// used as a path segment in upstream API requests.
type Key string

const (
	KeyLoL      Key = "lol"
	KeyCS       Key = "csgo"
	KeyDota     Key = "dota2"
	KeyValorant Key = "valorant"
	KeyR6       Key = "r6-siege"
)

// Info contains display information about a game
type Info struct {
	Key  Key
	Name string
}

// catalog is the fixed set of supported games, in menu order.
// Immutable for the lifetime of the process.
var catalog = []Info{
	{Key: KeyLoL, Name: "League of Legends"},
	{Key: KeyCS, Name: "CS2"},
	{Key: KeyDota, Name: "Dota 2"},
	{Key: KeyValorant, Name: "Valorant"},
	{Key: KeyR6, Name: "Rainbow Six"},
}

// All returns every supported game in menu order.
func All() []Info {
	out := make([]Info, len(catalog))
	copy(out, catalog)
	return out
}

// Name returns the display name for a game key. Unknown keys fall back
// to the raw key so menus and alerts still render something readable.
func Name(key Key) string {
	for _, info := range catalog {
		if info.Key == key {
			return info.Name
		}
	}
	return string(key)
}

// Known reports whether the key belongs to the catalog.
func Known(key Key) bool {
	for _, info := range catalog {
		if info.Key == key {
			return true
		}
	}
	return false
}
