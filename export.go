package poco

import (
	"io"
	"os"

	"github.com/cheyanggit/poco/codec"
)

// Export writes the record set through the given codec.
func Export(rs *RecordSet, c codec.Codec, writer io.Writer) error {
	return c.Write(rs, writer)
}

// ExportFile writes the record set through the given codec into a file.
func ExportFile(rs *RecordSet, c codec.Codec, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := Export(rs, c, f); err != nil {
		return err
	}
	return f.Close()
}
