package models

// Item is one collectible from the catalog, with its type name resolved
// and all modifier lines attached.
type Item struct {
	ID        int      `json:"id"`
	TypeID    int      `json:"type_id"`
	TypeName  string   `json:"type_name"`
	Fame      int      `json:"fame"` // rarity tier: 5 = most common, 1 = rarest
	Name      string   `json:"name"`
	Link      string   `json:"link,omitempty"` // image URL, may be empty
	Modifiers []string `json:"modifiers"`
}

// ItemType is an item category. A fixed, configuration-supplied subset of
// type ids marks the ascendancy classes.
type ItemType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
