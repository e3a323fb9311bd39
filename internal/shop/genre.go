package shop

import (
	"fmt"
	"strings"
)

// Genre is the music genre of a catalog item.
type Genre string

const (
	GenreRock       Genre = "ROCK"
	GenrePop        Genre = "POP"
	GenreJazz       Genre = "JAZZ"
	GenreClassical  Genre = "CLASSICAL"
	GenreHipHop     Genre = "HIPHOP"
	GenreElectronic Genre = "ELECTRONIC"
	GenreRap        Genre = "RAP"
	GenreFolk       Genre = "FOLK"
)

// Genres lists every known genre in declaration order.
var Genres = []Genre{
	GenreRock, GenrePop, GenreJazz, GenreClassical,
	GenreHipHop, GenreElectronic, GenreRap, GenreFolk,
}

// ParseGenre converts a case-insensitive genre name to a Genre.
func ParseGenre(s string) (Genre, error) {
	g := Genre(strings.ToUpper(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", fmt.Errorf("unknown genre %q", s)
	}
	return g, nil
}

// Valid reports whether g is one of the known genres.
func (g Genre) Valid() bool {
	for _, known := range Genres {
		if g == known {
			return true
		}
	}
	return false
}

func (g Genre) String() string {
	return string(g)
}
