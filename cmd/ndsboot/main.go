package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bodgit/ndsboot/key1"
	"github.com/bodgit/ndsboot/nds"
	"github.com/bodgit/plumbing"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var errNoKey = errors.New("decryption needs a key table, use --key")

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

// config is everything a run needs, gathered from the command line
type config struct {
	image   string
	key     string
	decrypt bool
	fixCRC  bool
	output  string
}

func newConfig(c *cli.Context) (*config, error) {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	cfg := &config{
		image:   c.Args().First(),
		key:     c.String("key"),
		decrypt: c.Bool("decrypt"),
		fixCRC:  c.Bool("fix-crc"),
		output:  c.String("output"),
	}

	if cfg.decrypt && cfg.key == "" {
		return nil, errNoKey
	}

	return cfg, nil
}

func loadKeyTable(path string) (*key1.KeyTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return key1.Load(f)
}

// process opens the image and applies the requested transformations to the
// boot code
func process(cfg *config) (*nds.Image, error) {
	img, err := nds.Open(cfg.image)
	if err != nil {
		return nil, err
	}

	h, b := img.Header, img.BootCode

	log.WithFields(log.Fields{
		"title": h.TitleString(),
		"code":  h.Code(),
		"words": len(b.Words),
	}).Debug("read cartridge image")

	if cfg.decrypt {
		kt, err := loadKeyTable(cfg.key)
		if err != nil {
			return nil, err
		}

		switch {
		case !b.SecureAreaPresent:
			log.Info("ROM has no ARM9 secure area")
		case !b.SecureAreaEncrypted:
			log.Info("ARM9 secure area is already decrypted")
		case b.DecryptSecureArea(kt, h.GameCode):
			log.Info("ARM9 secure area decrypted")
		default:
			log.Warn("ARM9 secure area did not decrypt cleanly")
		}
	}

	if cfg.fixCRC {
		log.Infof("ARM9 secure area CRC16 set to %#04x", b.FixChecksum())
	}

	return img, nil
}

func secureAreaStatus(b *nds.BootCode) string {
	switch {
	case !b.SecureAreaPresent:
		return "Not present"
	case b.SecureAreaEncrypted:
		return "Encrypted"
	default:
		return "Decrypted"
	}
}

func verdict(ok bool) string {
	if ok {
		return color.GreenString("OK")
	}
	return color.RedString("BAD")
}

func info(c *cli.Context) error {
	cfg, err := newConfig(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	img, err := process(cfg)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	h, b := img.Header, img.BootCode
	ok, crc := b.VerifyChecksum()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding(" ")
	table.SetNoWhiteSpace(true)

	table.Append([]string{"Title:", h.TitleString()})
	table.Append([]string{"Game code:", fmt.Sprintf("%s (0x%08x)", h.Code(), h.GameCode)})
	table.Append([]string{"Maker:", h.Maker()})
	table.Append([]string{"Unit:", h.Unit.String()})
	table.Append([]string{"Region:", h.Region.String()})
	table.Append([]string{"Version:", strconv.FormatUint(uint64(h.Version), 10)})
	table.Append([]string{"ARM9 offset:", fmt.Sprintf("0x%x", h.ARM9Offset)})
	table.Append([]string{"ARM9 entry:", fmt.Sprintf("0x%08x", h.ARM9Entry)})
	table.Append([]string{"ARM9 size:", strconv.FormatUint(uint64(h.ARM9Size), 10) + " words"})
	table.Append([]string{"Secure area:", secureAreaStatus(b)})
	table.Append([]string{"CRC16:", fmt.Sprintf("0x%04x, actual: 0x%04x %s", b.Checksum(), crc, verdict(ok))})

	table.Render()

	return nil
}

func dump(c *cli.Context) error {
	cfg, err := newConfig(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	img, err := process(cfg)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	f, err := os.Create(cfg.output)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	wc := new(plumbing.WriteCounter)
	if _, err := img.BootCode.WriteTo(io.MultiWriter(f, wc)); err != nil {
		return cli.NewExitError(err, 1)
	}

	if err := f.Close(); err != nil {
		return cli.NewExitError(err, 1)
	}

	log.WithField("bytes", wc.Count()).Infof("wrote %s", cfg.output)

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "ndsboot"
	app.Usage = "Nintendo DS ARM9 boot code utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	keyFlag := &cli.StringFlag{
		Name:    "key",
		Aliases: []string{"k"},
		Usage:   "read the KEY1 table from `FILE`",
		EnvVars: []string{"NDSBOOT_KEY"},
	}

	decryptFlag := &cli.BoolFlag{
		Name:    "decrypt",
		Aliases: []string{"d"},
		Usage:   "decrypt the ARM9 secure area",
	}

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Before = func(c *cli.Context) error {
		if c.Bool("verbose") {
			log.SetLevel(log.DebugLevel)
		}
		return nil
	}

	app.Commands = []*cli.Command{
		{
			Name:        "info",
			Usage:       "Info on a " + nds.Extension + " file",
			Description: "",
			Action:      info,
			Flags: []cli.Flag{
				keyFlag,
				decryptFlag,
			},
		},
		{
			Name:        "dump",
			Usage:       "Dump the ARM9 boot code from a " + nds.Extension + " file",
			Description: "",
			Action:      dump,
			Flags: []cli.Flag{
				keyFlag,
				decryptFlag,
				&cli.BoolFlag{
					Name:  "fix-crc",
					Usage: "store the correct secure area CRC16 in the dump",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "write the boot code to `FILE`",
					Value:   filepath.Join(cwd, "arm9.bin"),
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
