// Package speech turns terms and meanings into spoken output.
package speech

import (
	"strings"
)

const (
	defaultTermVoice    = "en-US"
	defaultMeaningVoice = "ko-KR"
)

var voices = map[string]string{
	"en": "en-US",
	"ko": "ko-KR",
	"ja": "ja-JP",
	"zh": "zh-CN",
}

//go:generate mockgen -source=speech.go -destination=../mocks/speech/mock_speaker.go -package=mock_speech Speaker

// Speaker utters text in a BCP-47 voice. It must not block until the utterance ends.
type Speaker interface {
	Speak(text, languageCode string)
}

// VoiceFor maps a language code such as "ja" to its voice, or returns fallback.
func VoiceFor(language, fallback string) string {
	if code, ok := voices[strings.ToLower(language)]; ok {
		return code
	}
	return fallback
}

// Voice speaks terms in the learning language and meanings in the system language.
type Voice struct {
	speaker      Speaker
	termVoice    string
	meaningVoice string
}

// NewVoice creates a new Voice.
func NewVoice(speaker Speaker, learningLanguage, systemLanguage string) *Voice {
	return &Voice{
		speaker:      speaker,
		termVoice:    VoiceFor(learningLanguage, defaultTermVoice),
		meaningVoice: VoiceFor(systemLanguage, defaultMeaningVoice),
	}
}

func (v *Voice) SpeakTerm(text string) {
	v.speak(text, v.termVoice)
}

func (v *Voice) SpeakMeaning(text string) {
	v.speak(text, v.meaningVoice)
}

func (v *Voice) speak(text, voice string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	v.speaker.Speak(text, voice)
}
