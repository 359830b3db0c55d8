package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/fat12fsck/fat12fsck/fat12"
	"github.com/fat12fsck/fat12fsck/internal/imagefile"
)

func main() {
	app := cli.App{
		Name:      "fsck12",
		Usage:     "Check and repair a FAT12 disk image in place",
		ArgsUsage: "IMAGE_PATH",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "report what would be repaired without writing the image back",
			},
			&cli.BoolFlag{
				Name:  "list",
				Usage: "print the directory listing after scanning",
			},
		},
		Action: runScan,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("fsck12: %s", err.Error())
	}
}

func runScan(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("exactly one IMAGE_PATH argument is required", 1)
	}
	path := c.Args().Get(0)

	img, closer, err := imagefile.Open(path)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	rep, err := fat12.Scan(img.Bytes())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if rep.Empty() {
		fmt.Println("no inconsistencies found")
	} else {
		fmt.Print(rep.String())
	}

	if c.Bool("list") {
		printListing(os.Stdout, img)
	}

	if c.Bool("dry-run") {
		return nil
	}
	if err := closer(); err != nil {
		return cli.Exit(fmt.Sprintf("writing repaired image back: %s", err), 1)
	}
	return nil
}
