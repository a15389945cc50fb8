package audio

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// Player renders synthesized MP3 speech to the default output device.
type Player struct {
	logger *log.Logger
}

// NewPlayer creates a Player.
func NewPlayer(logger *log.Logger) *Player {
	return &Player{logger: logger}
}

// Play decodes path and plays it to completion. The playback itself runs on
// the speaker's worker; the caller blocks on a single-use done channel until
// the stream is fully drained. All file handles are released before Play
// returns, so the caller may delete the file immediately afterwards.
func (p *Player) Play(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open speech file: %w", err)
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("decode mp3: %w", err)
	}
	// Closing the streamer closes the underlying file.
	defer streamer.Close()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		close(done)
	})))

	<-done
	return nil
}
