package main

import (
	"errors"

	"github.com/ARTM2000/acorn"
	"github.com/ARTM2000/acorn/internal/music"
	"github.com/spf13/cobra"
)

func newMusicCmd(opts *rootOptions) *cobra.Command {
	var songs []string

	cmd := &cobra.Command{
		Use:   "music",
		Short: "List the songs of a music library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			b := acorn.NewBuilder(opts.builderOptions()...)
			b.RegisterModule(music.Module(cmd.OutOrStdout()))
			if len(songs) > 0 {
				b.RegisterInstance(&music.Playlist{Songs: songs})
			}

			c, err := b.Build()
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, c.Shutdown(cmd.Context()))
			}()

			lib, err := acorn.Resolve[music.Library](c)
			if err != nil {
				return err
			}
			lib.ListSongs()
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&songs, "song", nil, "Song to play instead of the default playlist (repeatable)")
	return cmd
}
