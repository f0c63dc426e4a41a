package memfile_test

import (
	"fmt"
	"io"

	"github.com/performancecopilot/memfile"
)

func ExampleFile() {
	f := memfile.Open(nil, "w")

	f.WriteValues(
		memfile.Text("mean "), memfile.Float(12.5), memfile.Text("\n"),
		memfile.Text("count "), memfile.Int(3), memfile.Text("\n"),
	)

	f.Seek(0, io.SeekStart)
	for line := range f.Lines() {
		fmt.Println(string(line))
	}

	// Output:
	// mean 12.5
	// count 3
}

func ExampleFile_Scan() {
	f := memfile.OpenString("pi 3.14159 radius 2", "r")

	res, _ := f.Scan(memfile.Chars(3), memfile.NumberFormat, memfile.Chars(8), memfile.NumberFormat)

	pi, r := res[1].Number(), res[3].Number()
	fmt.Println(pi * r * r)

	// Output:
	// 12.56636
}

func ExampleFile_Scan_lines() {
	f := memfile.OpenString("HEADER v1\n512\npayload", "r")

	res, _ := f.Scan(memfile.LineFormat, memfile.NumberFormat)
	fmt.Printf("%s, %v bytes\n", res[0].Bytes(), res[1].Number())

	// Output:
	// HEADER v1, 512 bytes
}
