package ingest

import "io"

// SheetReader lee la primera hoja de un fichero tabular (xlsx o csv).
type SheetReader interface {
	ReadSheet(filename string, r io.Reader) (headers []string, rows [][]string, err error)
}
