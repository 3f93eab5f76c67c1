package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/pagegen/cmd/pagegen/commands"
	"git.home.luguber.info/inful/pagegen/internal/foundation/errors"
	"git.home.luguber.info/inful/pagegen/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Must(cli,
		kong.Name("pagegen"),
		kong.Description("Compile content descriptions into static pages with hashed assets."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = ctx.Run(&commands.Global{Out: os.Stdout}, cli)
	errors.NewCLIErrorAdapter(cli.Verbose, nil).HandleError(err)
}
