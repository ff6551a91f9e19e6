// Package music is a small library of songs played through an audio player.
package music

import (
	"fmt"
	"io"

	"github.com/ARTM2000/acorn"
)

// DefaultSongs is the playlist of a library created by NewMusicLibrary.
var DefaultSongs = []string{"En Yesu Unnai Thedugiraar.mp3"}

// Player plays songs.
type Player interface {
	Play(song string)
}

// Library lists its songs.
type Library interface {
	ListSongs()
}

// AudioPlayer is a Player that prints what it plays.
type AudioPlayer struct {
	out io.Writer
}

// NewAudioPlayer creates an AudioPlayer printing to out.
func NewAudioPlayer(out io.Writer) *AudioPlayer {
	return &AudioPlayer{out: out}
}

// Play implements Player.
func (p *AudioPlayer) Play(song string) {
	fmt.Fprintf(p.out, "Playing : %q song...\n", song)
}

// MusicLibrary plays each of its songs when listed.
type MusicLibrary struct {
	out    io.Writer
	player Player
	songs  []string
}

// NewMusicLibrary creates a MusicLibrary holding DefaultSongs.
func NewMusicLibrary(out io.Writer, player Player) *MusicLibrary {
	return &MusicLibrary{out: out, player: player, songs: DefaultSongs}
}

// Playlist overrides DefaultSongs when registered.
type Playlist struct {
	Songs []string
}

// NewMusicLibraryWithPlaylist creates a MusicLibrary holding the playlist's
// songs.
func NewMusicLibraryWithPlaylist(out io.Writer, player Player, playlist *Playlist) *MusicLibrary {
	return &MusicLibrary{out: out, player: player, songs: playlist.Songs}
}

// ListSongs implements Library. It plays every song in order.
func (l *MusicLibrary) ListSongs() {
	fmt.Fprintln(l.out, "Listing Songs...")
	for _, s := range l.songs {
		l.player.Play(s)
	}
}

// Close implements io.Closer.
func (l *MusicLibrary) Close() error {
	fmt.Fprintln(l.out, "Closing library")
	return nil
}

// Module registers AudioPlayer as Player and a single MusicLibrary as
// Library. Output goes to out.
func Module(out io.Writer) acorn.Module {
	return acorn.ModuleFunc(func(b *acorn.Builder) error {
		b.RegisterInstance(out).As(acorn.Type[io.Writer]())
		b.RegisterType(NewAudioPlayer).As(acorn.Type[Player]())
		b.RegisterType(NewMusicLibrary, NewMusicLibraryWithPlaylist).As(acorn.Type[Library]()).SingleInstance()
		return nil
	})
}
