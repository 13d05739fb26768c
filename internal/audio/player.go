package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Player streams a Voice to the default output device.
type Player struct {
	stream *portaudio.Stream
	voice  *Voice
}

func Start(v *Voice) (*Player, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, v.Fill)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("audio: open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("audio: start stream: %w", err)
	}
	return &Player{stream: stream, voice: v}, nil
}

func (p *Player) Voice() *Voice { return p.voice }

func (p *Player) Stop() error {
	p.voice.Silence()
	err := p.stream.Stop()
	if cerr := p.stream.Close(); err == nil {
		err = cerr
	}
	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}
	return err
}
