package main

import (
	"database/sql"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	ucsf "github.com/hobofan/ucsf-nmr"
)

// printJSON writes v to stdout, indented.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func intsString(v []int) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}

func nullFloat(v sql.NullFloat64) string {
	if !v.Valid {
		return "-"
	}
	return strconv.FormatFloat(v.Float64, 'g', 6, 64)
}

// tilePadded reports whether a tile was trimmed along any axis.
func tilePadded(f *ucsf.File, t ucsf.Tile) bool {
	for d, l := range t.AxisLengths {
		if l < f.Axes[d].TileSize {
			return true
		}
	}
	return false
}
