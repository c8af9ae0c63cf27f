// Package audio holds the sound outputs of both hosts: raylib music streams
// for the window and a beep speaker chime for the terminal.
package audio

import (
	"linux-backdrop/internal/utils"
	"linux-backdrop/internal/wallpaper"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type AudioStream struct {
	music  rl.Music
	active bool
}

// AudioManager owns the looping ambient tracks of the window host.
type AudioManager struct {
	streams []*AudioStream
}

func NewAudioManager() *AudioManager {
	if !utils.SilentMode && !rl.IsAudioDeviceReady() {
		rl.InitAudioDevice()
	}
	return &AudioManager{
		streams: make([]*AudioStream, 0),
	}
}

// PlayAmbient starts the scene's ambient track, if any.
func (am *AudioManager) PlayAmbient(settings wallpaper.SoundSettings) {
	if utils.SilentMode || settings.File == "" {
		return
	}

	soundPath := utils.ResolveAssetPath(settings.File)
	music := rl.LoadMusicStream(soundPath)
	if music.FrameCount == 0 {
		utils.Warn("Audio: could not load %s", soundPath)
		return
	}

	music.Looping = true
	rl.SetMusicVolume(music, float32(settings.Volume))
	rl.PlayMusicStream(music)

	am.streams = append(am.streams, &AudioStream{music: music, active: true})
	utils.Info("Audio: playing %s (Vol: %.2f)", soundPath, settings.Volume)
}

// Update refills the stream buffers; call once per frame.
func (am *AudioManager) Update() {
	for _, stream := range am.streams {
		if stream.active {
			rl.UpdateMusicStream(stream.music)
		}
	}
}

func (am *AudioManager) Close() {
	for _, stream := range am.streams {
		if stream.active {
			rl.StopMusicStream(stream.music)
			rl.UnloadMusicStream(stream.music)
			stream.active = false
		}
	}
	if rl.IsAudioDeviceReady() {
		rl.CloseAudioDevice()
	}
}
