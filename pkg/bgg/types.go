package bgg

import "encoding/xml"

// Comment is a single user review attached to a catalog entry. Username and
// rating may be empty for anonymous or unrated entries.
type Comment struct {
	Username string `xml:"username,attr" json:"username,omitempty"`
	Rating   string `xml:"rating,attr" json:"rating,omitempty"`
	Value    string `xml:"value,attr" json:"value"`
}

// GameInfo holds the catalog metadata of a single game. Every field other
// than ID may be empty when the remote schema omits the corresponding
// element; that is expected, not an error.
type GameInfo struct {
	ID          int    `json:"id"`
	Name        string `json:"name,omitempty"`
	Year        string `json:"year,omitempty"`
	Description string `json:"description,omitempty"`
}

// itemsDoc mirrors the root element shared by the search and thing endpoints.
type itemsDoc struct {
	XMLName xml.Name  `xml:"items"`
	Items   []itemDoc `xml:"item"`
}

type itemDoc struct {
	ID            string      `xml:"id,attr"`
	Names         []valueAttr `xml:"name"`
	YearPublished *valueAttr  `xml:"yearpublished"`
	Description   string      `xml:"description"`
	Comments      struct {
		Comments []Comment `xml:"comment"`
	} `xml:"comments"`
}

type valueAttr struct {
	Value string `xml:"value,attr"`
}
