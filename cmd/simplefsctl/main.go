// Command simplefsctl drives a single simple-file-system volume backed by
// an on-disk image file: format it and check a file's stored integrity
// information from the shell.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/juanfgarcia/simple-file-system/device"
	"github.com/juanfgarcia/simple-file-system/disks"
	"github.com/juanfgarcia/simple-file-system/fs"
)

func main() {
	app := cli.App{
		Name:  "simplefsctl",
		Usage: "Format and drive a simple-file-system volume",
		Commands: []*cli.Command{
			{
				Name:      "format",
				Usage:     "Create a new, empty volume",
				Action:    formatVolume,
				ArgsUsage: "IMAGE_FILE",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "size", Usage: "device size in bytes"},
					&cli.StringFlag{Name: "profile", Usage: "named device-size preset (min, mid, max)"},
				},
			},
			{
				Name:      "check",
				Usage:     "Verify a file's stored integrity information",
				Action:    checkFile,
				ArgsUsage: "IMAGE_FILE NAME",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("simplefsctl: %s", err.Error())
	}
}

func resolveSize(context *cli.Context) (int64, error) {
	if profile := context.String("profile"); profile != "" {
		p, err := disks.GetProfile(profile)
		if err != nil {
			return 0, err
		}
		return p.SizeBytes, nil
	}
	if size := context.Int64("size"); size > 0 {
		return size, nil
	}
	return 0, fmt.Errorf("one of --size or --profile is required")
}

func formatVolume(context *cli.Context) error {
	if context.Args().Len() != 1 {
		return fmt.Errorf("usage: simplefsctl format [--size N | --profile NAME] IMAGE_FILE")
	}
	size, err := resolveSize(context)
	if err != nil {
		return err
	}

	path := context.Args().First()
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := file.Truncate(size + int64(fs.FirstDataBlock*fs.BlockSize)); err != nil {
		return err
	}

	dev := device.New(file, fs.FirstDataBlock+int(size/fs.BlockSize))
	sys := fs.New(dev)
	if sys.MkFS(size) != 0 {
		return fmt.Errorf("format failed: device size %d is out of range", size)
	}
	fmt.Printf("formatted %s: %d bytes\n", path, size)
	return nil
}

func openVolume(path string) (*fs.FileSystem, func() error, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, err
	}

	dev := device.New(file, int(info.Size()/fs.BlockSize))
	sys := fs.New(dev)
	if sys.Mount() != 0 {
		file.Close()
		return nil, nil, fmt.Errorf("mount failed for %s", path)
	}
	return sys, file.Close, nil
}

func checkFile(context *cli.Context) error {
	if context.Args().Len() != 2 {
		return fmt.Errorf("usage: simplefsctl check IMAGE_FILE NAME")
	}
	sys, close_, err := openVolume(context.Args().Get(0))
	if err != nil {
		return err
	}
	defer close_()

	name := context.Args().Get(1)
	switch sys.CheckFile(name) {
	case 0:
		fmt.Printf("%s: ok\n", name)
	case -1:
		fmt.Printf("%s: corrupted\n", name)
	default:
		fmt.Printf("%s: no integrity information on file\n", name)
	}
	if sys.Unmount() != 0 {
		return fmt.Errorf("unmount failed")
	}
	return nil
}
