package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/at-ishikawa/wortkarte/internal/flashcard"
	"github.com/at-ishikawa/wortkarte/internal/inference"
	mock_inference "github.com/at-ishikawa/wortkarte/internal/mocks/inference"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testSeed = 7

var testCards = []flashcard.Flashcard{
	{Word: "Haus", GermanExplanation: "Ein Gebäude zum Wohnen.", EnglishTranslation: "house", ExampleSentence: "Das Haus ist groß."},
	{Word: "Baum", GermanExplanation: "Eine große Pflanze.", EnglishTranslation: "tree", ExampleSentence: "Der Baum ist alt."},
	{Word: "Katze", GermanExplanation: "Ein Haustier.", EnglishTranslation: "cat", ExampleSentence: "Die Katze schläft."},
	{Word: "Hund", GermanExplanation: "Ein treues Haustier.", EnglishTranslation: "dog", ExampleSentence: "Der Hund bellt."},
}

func newTestStore(t *testing.T, cards []flashcard.Flashcard) *flashcard.Store {
	t.Helper()
	store := flashcard.NewStore(filepath.Join(t.TempDir(), "flashcards.csv"))
	for _, card := range cards {
		store.Append(card)
	}
	return store
}

func newTestCLI(t *testing.T, store *flashcard.Store, client *mock_inference.MockClient, input string) (*FlashcardCLI, *bytes.Buffer) {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = noColor
	})

	var stdout bytes.Buffer
	cli := newFlashcardCLI(store, client, rand.New(rand.NewSource(testSeed)), strings.NewReader(input), &stdout)
	return cli, &stdout
}

func TestFlashcardCLI_AddWord(t *testing.T) {
	generated := `Word: Apfel
German explanation: Eine runde Frucht.
English translation: apple
Example sentence: Ich esse einen Apfel.`

	tests := []struct {
		name          string
		word          string
		cards         []flashcard.Flashcard
		setupMock     func(client *mock_inference.MockClient)
		wantErr       bool
		wantCount     int
		wantOutput    []string
		wantNotOutput []string
		wantSaved     *flashcard.Flashcard
	}{
		{
			name:  "new word is generated and saved",
			word:  "Apfel",
			cards: testCards,
			setupMock: func(client *mock_inference.MockClient) {
				client.EXPECT().GenerateFlashcard(gomock.Any(), "Apfel").Return(generated, nil)
			},
			wantCount: len(testCards) + 1,
			wantOutput: []string{
				"Generated Flashcard:",
				generated,
				"Flashcard for 'Apfel' saved to ",
			},
			wantSaved: &flashcard.Flashcard{
				Word:               "Apfel",
				GermanExplanation:  "Eine runde Frucht.",
				EnglishTranslation: "apple",
				ExampleSentence:    "Ich esse einen Apfel.",
			},
		},
		{
			name:      "duplicate with different casing is rejected",
			word:      "hAUS",
			cards:     testCards,
			setupMock: func(client *mock_inference.MockClient) {},
			wantCount: len(testCards),
			wantOutput: []string{
				"The word 'hAUS' is already in your flashcards list.",
			},
			wantNotOutput: []string{"Generated Flashcard:"},
		},
		{
			name:      "empty word",
			word:      "",
			setupMock: func(client *mock_inference.MockClient) {},
			wantCount: 0,
			wantOutput: []string{
				"Please enter a valid word.",
			},
		},
		{
			name:  "malformed response is saved with empty fields",
			word:  "Tisch",
			cards: nil,
			setupMock: func(client *mock_inference.MockClient) {
				client.EXPECT().GenerateFlashcard(gomock.Any(), "Tisch").Return("Sorry, I cannot help with that.", nil)
			},
			wantCount: 1,
			wantOutput: []string{
				"Flashcard for '' saved to ",
			},
			wantSaved: &flashcard.Flashcard{},
		},
		{
			name:  "empty response is saved as an empty card",
			word:  "Tisch",
			cards: testCards,
			setupMock: func(client *mock_inference.MockClient) {
				client.EXPECT().GenerateFlashcard(gomock.Any(), "Tisch").Return("", fmt.Errorf("%w: no choices", inference.ErrEmptyResponse))
			},
			wantCount: len(testCards) + 1,
			wantOutput: []string{
				"Generated Flashcard:",
				"Flashcard for '' saved to ",
			},
			wantSaved: &flashcard.Flashcard{},
		},
		{
			name:  "generator error is returned",
			word:  "Tisch",
			cards: testCards,
			setupMock: func(client *mock_inference.MockClient) {
				client.EXPECT().GenerateFlashcard(gomock.Any(), "Tisch").Return("", errors.New("response error 401"))
			},
			wantErr:   true,
			wantCount: len(testCards),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mock_inference.NewMockClient(ctrl)
			tt.setupMock(client)
			store := newTestStore(t, tt.cards)
			cli, stdout := newTestCLI(t, store, client, "")

			err := cli.AddWord(context.Background(), tt.word)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantCount, store.Len())
			for _, want := range tt.wantOutput {
				assert.Contains(t, stdout.String(), want)
			}
			for _, notWant := range tt.wantNotOutput {
				assert.NotContains(t, stdout.String(), notWant)
			}

			if tt.wantSaved != nil {
				reloaded, err := flashcard.Load(store.Path())
				require.NoError(t, err)
				require.Equal(t, tt.wantCount, reloaded.Len())
				assert.Equal(t, *tt.wantSaved, reloaded.Cards()[reloaded.Len()-1])
			}
		})
	}
}

func TestFlashcardCLI_Quiz(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		cli, stdout := newTestCLI(t, newTestStore(t, nil), nil, "2\n")

		require.NoError(t, cli.Quiz(context.Background()))
		assert.Equal(t, "No flashcards available yet. Please add some words first.\n", stdout.String())

		line, err := cli.stdinReader.ReadString('\n')
		require.NoError(t, err)
		assert.Equal(t, "2\n", line, "quiz must not read an answer")
	})

	t.Run("single card presents three identical options", func(t *testing.T) {
		cli, stdout := newTestCLI(t, newTestStore(t, testCards[:1]), nil, "3\n")

		require.NoError(t, cli.Quiz(context.Background()))
		output := stdout.String()
		assert.Contains(t, output, "--- QUIZ ---")
		assert.Contains(t, output, "German word: Haus")
		assert.Contains(t, output, "German sentence: Das Haus ist groß.")
		assert.Contains(t, output, "1. house\n2. house\n3. house\n")
		assert.Contains(t, output, "Correct!")
		assert.Contains(t, output, "German explanation: Ein Gebäude zum Wohnen.")
	})

	t.Run("answer two reports exactly one outcome", func(t *testing.T) {
		for seed := int64(0); seed < 10; seed++ {
			cli, stdout := newTestCLI(t, newTestStore(t, testCards), nil, "2\n")
			cli.rng = rand.New(rand.NewSource(seed))

			require.NoError(t, cli.Quiz(context.Background()))
			output := stdout.String()

			sampled := sampledCard(t, output)
			correct := strings.Contains(output, "Correct!")
			wrong := strings.Contains(output, "Wrong. The correct answer was: "+sampled.EnglishTranslation)
			assert.True(t, correct != wrong, "exactly one outcome expected:\n%s", output)
			assert.Contains(t, output, "German explanation: "+sampled.GermanExplanation)
			assert.Equal(t, correct, optionAt(t, output, 2) == sampled.EnglishTranslation)
		}
	})

	invalidInputs := []struct {
		name  string
		input string
	}{
		{name: "non numeric", input: "zwei\n"},
		{name: "out of range", input: "4\n"},
		{name: "zero", input: "0\n"},
		{name: "signed", input: "+2\n"},
		{name: "empty", input: "\n"},
	}
	for _, tt := range invalidInputs {
		t.Run("invalid answer "+tt.name, func(t *testing.T) {
			cli, stdout := newTestCLI(t, newTestStore(t, testCards), nil, tt.input)

			require.NoError(t, cli.Quiz(context.Background()))
			output := stdout.String()
			assert.Contains(t, output, "Invalid choice.\n")
			assert.NotContains(t, output, "Correct!")
			assert.NotContains(t, output, "Wrong.")
			assert.NotContains(t, output, "German explanation:")
		})
	}

	t.Run("answer without trailing newline is accepted", func(t *testing.T) {
		cli, stdout := newTestCLI(t, newTestStore(t, testCards[:1]), nil, "1")

		require.NoError(t, cli.Quiz(context.Background()))
		assert.Contains(t, stdout.String(), "Correct!")
	})

	t.Run("end of input ends the session", func(t *testing.T) {
		cli, _ := newTestCLI(t, newTestStore(t, testCards), nil, "")

		err := cli.Quiz(context.Background())
		assert.ErrorIs(t, err, errEnd)
	})
}

func TestFlashcardCLI_Session(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		cards      []flashcard.Flashcard
		setupMock  func(client *mock_inference.MockClient)
		wantReturn error
		wantCount  int
		wantOutput []string
	}{
		{
			name:       "exit",
			input:      "3\n",
			wantReturn: errEnd,
			wantOutput: []string{"Menu:", "1. Enter a new German word", "2. Take a quiz", "3. Exit", "Goodbye!"},
		},
		{
			name:       "end of input",
			input:      "",
			wantReturn: errEnd,
		},
		{
			name:       "invalid option",
			input:      "5\n",
			wantOutput: []string{"Invalid choice. Please enter 1, 2, or 3."},
		},
		{
			name:  "add word",
			input: " 1 \n  Apfel \n",
			setupMock: func(client *mock_inference.MockClient) {
				client.EXPECT().GenerateFlashcard(gomock.Any(), "Apfel").Return("Word: Apfel\nEnglish translation: apple", nil)
			},
			wantCount:  1,
			wantOutput: []string{"Enter a new German word: ", "Flashcard for 'Apfel' saved to "},
		},
		{
			name:       "add word with end of input",
			input:      "1\n",
			wantReturn: errEnd,
		},
		{
			name:       "take a quiz on an empty store",
			input:      "2\n",
			wantOutput: []string{"No flashcards available yet. Please add some words first."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mock_inference.NewMockClient(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(client)
			}
			store := newTestStore(t, tt.cards)
			cli, stdout := newTestCLI(t, store, client, tt.input)

			err := cli.Session(context.Background())
			if tt.wantReturn != nil {
				assert.ErrorIs(t, err, tt.wantReturn)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCount, store.Len())
			for _, want := range tt.wantOutput {
				assert.Contains(t, stdout.String(), want)
			}
		})
	}
}

func TestFlashcardCLI_RunMenu(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		setupMock  func(client *mock_inference.MockClient)
		wantErr    bool
		wantCount  int
		wantOutput []string
	}{
		{
			name:       "invalid choice reloops until exit",
			input:      "x\n9\n3\n",
			wantOutput: []string{"German Flashcard Tool", "Invalid choice. Please enter 1, 2, or 3.", "Goodbye!"},
		},
		{
			name:  "add the same word twice",
			input: "1\nApfel\n1\napfel\n3\n",
			setupMock: func(client *mock_inference.MockClient) {
				client.EXPECT().GenerateFlashcard(gomock.Any(), "Apfel").Return("Word: Apfel\nEnglish translation: apple", nil).Times(1)
			},
			wantCount:  1,
			wantOutput: []string{"The word 'apfel' is already in your flashcards list."},
		},
		{
			name:  "add then quiz",
			input: "1\nApfel\n2\n1\n3\n",
			setupMock: func(client *mock_inference.MockClient) {
				client.EXPECT().GenerateFlashcard(gomock.Any(), "Apfel").Return("Word: Apfel\nGerman explanation: Obst.\nEnglish translation: apple", nil)
			},
			wantCount:  1,
			wantOutput: []string{"German word: Apfel", "1. apple", "Correct!", "German explanation: Obst."},
		},
		{
			name:       "end of input exits",
			input:      "2\n",
			wantOutput: []string{"No flashcards available yet."},
		},
		{
			name:  "empty response keeps the session running",
			input: "1\nApfel\n2\n1\n3\n",
			setupMock: func(client *mock_inference.MockClient) {
				client.EXPECT().GenerateFlashcard(gomock.Any(), "Apfel").Return("", inference.ErrEmptyResponse)
			},
			wantCount:  1,
			wantOutput: []string{"Flashcard for '' saved to ", "--- QUIZ ---", "Goodbye!"},
		},
		{
			name:  "generator failure ends the session with an error",
			input: "1\nApfel\n3\n",
			setupMock: func(client *mock_inference.MockClient) {
				client.EXPECT().GenerateFlashcard(gomock.Any(), "Apfel").Return("", errors.New("response error 500"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mock_inference.NewMockClient(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(client)
			}
			store := newTestStore(t, nil)
			cli, stdout := newTestCLI(t, store, client, tt.input)

			err := cli.RunMenu(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "response error 500")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, store.Len())
			for _, want := range tt.wantOutput {
				assert.Contains(t, stdout.String(), want)
			}
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		answer string
		want   int
		wantOK bool
	}{
		{answer: "1", want: 1, wantOK: true},
		{answer: "3", want: 3, wantOK: true},
		{answer: "12", want: 12, wantOK: true},
		{answer: "", wantOK: false},
		{answer: "-1", wantOK: false},
		{answer: "+1", wantOK: false},
		{answer: "1.0", wantOK: false},
		{answer: "eins", wantOK: false},
		{answer: "٣", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			got, ok := parseChoice(tt.answer)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// sampledCard finds the quizzed card from the printed German word.
func sampledCard(t *testing.T, output string) flashcard.Flashcard {
	t.Helper()
	for _, card := range testCards {
		if strings.Contains(output, "German word: "+card.Word+"\n") {
			return card
		}
	}
	require.FailNow(t, "no sampled card in output", output)
	return flashcard.Flashcard{}
}

// optionAt returns the text printed for the 1-based option number.
func optionAt(t *testing.T, output string, number int) string {
	t.Helper()
	prefix := string(rune('0'+number)) + ". "
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimPrefix(line, prefix)
		}
	}
	require.FailNow(t, "option not found", "option %d in %s", number, output)
	return ""
}

type cancelledSession struct {
	started chan struct{}
}

func (session cancelledSession) Session(ctx context.Context) error {
	close(session.started)
	<-ctx.Done()
	return ctx.Err()
}

func TestFlashcardCLI_Run_CancelledSessionExits(t *testing.T) {
	cli, stdout := newTestCLI(t, newTestStore(t, nil), nil, "")
	baseline := runtime.NumGoroutine()

	ctx, cancel := context.WithCancel(context.Background())
	session := cancelledSession{started: make(chan struct{})}
	go func() {
		<-session.started
		cancel()
	}()

	require.NoError(t, cli.Run(ctx, session))
	assert.Contains(t, stdout.String(), "Received interrupt signal, exiting...")
	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= baseline
	}, time.Second, 10*time.Millisecond)
}
