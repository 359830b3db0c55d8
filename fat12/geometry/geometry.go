// Package geometry holds a table of well-known FAT12 floppy geometries,
// used only to turn a bare BadBootSector rejection into a diagnosable one.
// It plays no part in BPB decoding or repair decisions.
package geometry

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

// Preset describes one well-known floppy geometry.
type Preset struct {
	Name              string `csv:"name"`
	BytesPerSector    uint   `csv:"bytes_per_sector"`
	SectorsPerCluster uint   `csv:"sectors_per_cluster"`
	TotalSectors      uint   `csv:"total_sectors"`
}

// knownPresetsCSV lists the floppy geometries FAT12 tools have historically
// had to deal with. https://en.wikipedia.org/wiki/List_of_floppy_disk_formats
const knownPresetsCSV = `name,bytes_per_sector,sectors_per_cluster,total_sectors
"5.25"" 360KB DD",512,2,720
"5.25"" 1.2MB HD",512,1,2400
"3.5"" 720KB DD",512,2,1440
"3.5"" 1.44MB HD",512,1,2880
"3.5"" 2.88MB ED",512,2,5760
"8"" 250KB SD",128,1,2002
`

var presets []Preset

func init() {
	reader := strings.NewReader(knownPresetsCSV)
	err := gocsv.UnmarshalToCallback(reader, func(row Preset) error {
		presets = append(presets, row)
		return nil
	})
	if err != nil && err != io.EOF {
		panic(err)
	}
}

// Lookup returns the preset matching the declared geometry exactly, if any.
func Lookup(bytesPerSector, sectorsPerCluster, totalSectors uint) (Preset, bool) {
	for _, p := range presets {
		if p.BytesPerSector == bytesPerSector &&
			p.SectorsPerCluster == sectorsPerCluster &&
			p.TotalSectors == totalSectors {
			return p, true
		}
	}
	return Preset{}, false
}

// DescribeMismatch names the known presets sharing the declared sector size,
// for inclusion in a BadBootSector diagnostic. Returns "" if nothing is
// close enough to be worth mentioning.
func DescribeMismatch(bytesPerSector uint) string {
	var names []string
	for _, p := range presets {
		if p.BytesPerSector == bytesPerSector {
			names = append(names, p.Name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	return fmt.Sprintf("does not match any known geometry for %d bytes/sector: %s",
		bytesPerSector, strings.Join(names, ", "))
}
