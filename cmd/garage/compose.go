package main

import (
	"errors"
	"io"

	"github.com/ARTM2000/acorn"
	"github.com/ARTM2000/acorn/configuration"
	"github.com/ARTM2000/acorn/internal/garage"
	"github.com/ARTM2000/acorn/internal/music"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// catalog names every type a component file may use.
func catalog() *configuration.Catalog {
	return configuration.NewCatalog().
		AddType("consoleLog", garage.NewConsoleLog).
		AddType("emailLog", garage.NewEmailLog).
		AddType("engine", garage.NewEngine).
		AddType("car", garage.NewCar, garage.NewCarWithLog).
		AddType("audioPlayer", music.NewAudioPlayer).
		AddType("musicLibrary", music.NewMusicLibrary, music.NewMusicLibraryWithPlaylist).
		AddService("log", acorn.Type[garage.Log]()).
		AddService("report", acorn.Type[garage.Report]()).
		AddService("engine", acorn.Type[*garage.Engine]()).
		AddService("car", acorn.Type[*garage.Car]()).
		AddService("player", acorn.Type[music.Player]()).
		AddService("library", acorn.Type[music.Library]()).
		AddService("playlist", acorn.Type[*music.Playlist]())
}

func newComposeCmd(opts *rootOptions) *cobra.Command {
	var files []string

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Build a container from component files and use what it wires",
		Long: `compose registers the components listed in one or more YAML files, then
drives the car and lists the music library if they are registered.

Types: consoleLog, emailLog, engine, car, audioPlayer, musicLibrary
Services: log, report, engine, car, player, library, playlist`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := configuration.Load(files...)
			if err != nil {
				return err
			}
			opts.logger.WithFields(logrus.Fields{
				"files":      files,
				"components": len(f.Components),
			}).Info("loaded component files")

			return compose(cmd, f, opts.builderOptions())
		},
	}

	cmd.Flags().StringSliceVarP(&files, "file", "f", nil, "Component file (repeatable, later files add components)")
	cmd.MarkFlagRequired("file")
	return cmd
}

func compose(cmd *cobra.Command, f *configuration.File, opts []acorn.Option) error {
	out := cmd.OutOrStdout()

	b := acorn.NewBuilder(opts...)
	b.RegisterInstance(out).As(acorn.Type[io.Writer]())
	b.RegisterModule(f.Module(catalog()))

	c, err := b.Build()
	if err != nil {
		return err
	}

	carType, libType := acorn.Type[*garage.Car](), acorn.Type[music.Library]()
	if !c.IsRegistered(carType) && !c.IsRegistered(libType) {
		return errors.Join(
			errors.New("component files register neither a car nor a library"),
			c.Shutdown(cmd.Context()),
		)
	}

	if c.IsRegistered(libType) {
		lib, err := acorn.Resolve[music.Library](c)
		if err != nil {
			return errors.Join(err, c.Shutdown(cmd.Context()))
		}
		lib.ListSongs()
	}

	if c.IsRegistered(carType) {
		return garage.Drive(cmd.Context(), c)
	}
	return c.Shutdown(cmd.Context())
}
