package speech

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_speech "github.com/at-ishikawa/vocato/internal/mocks/speech"
)

func TestVoice(t *testing.T) {
	tests := []struct {
		name             string
		learningLanguage string
		systemLanguage   string
		speak            func(v *Voice)
		setupMock        func(m *mock_speech.MockSpeaker)
	}{
		{
			name:             "term in learning language",
			learningLanguage: "ja",
			systemLanguage:   "en",
			speak:            func(v *Voice) { v.SpeakTerm("猫") },
			setupMock: func(m *mock_speech.MockSpeaker) {
				m.EXPECT().Speak("猫", "ja-JP")
			},
		},
		{
			name:             "meaning in system language",
			learningLanguage: "en",
			systemLanguage:   "zh",
			speak:            func(v *Voice) { v.SpeakMeaning(" cat ") },
			setupMock: func(m *mock_speech.MockSpeaker) {
				m.EXPECT().Speak("cat", "zh-CN")
			},
		},
		{
			name:             "unknown languages fall back to defaults",
			learningLanguage: "fr",
			systemLanguage:   "",
			speak: func(v *Voice) {
				v.SpeakTerm("apple")
				v.SpeakMeaning("사과")
			},
			setupMock: func(m *mock_speech.MockSpeaker) {
				gomock.InOrder(
					m.EXPECT().Speak("apple", "en-US"),
					m.EXPECT().Speak("사과", "ko-KR"),
				)
			},
		},
		{
			name:             "blank text is not spoken",
			learningLanguage: "en",
			systemLanguage:   "ko",
			speak: func(v *Voice) {
				v.SpeakTerm("   ")
				v.SpeakMeaning("")
			},
			setupMock: func(m *mock_speech.MockSpeaker) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			speaker := mock_speech.NewMockSpeaker(ctrl)
			tt.setupMock(speaker)

			tt.speak(NewVoice(speaker, tt.learningLanguage, tt.systemLanguage))
		})
	}
}

func TestConsoleSpeaker_Speak(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	NewConsoleSpeaker(&buf).Speak("apple", "en-US")
	assert.Equal(t, "[en-US] apple\n", buf.String())
}
