package progress

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/datekey"
)

// Codec converts a record to and from its stored JSON form.
type Codec[D any] interface {
	Encode(Record[D]) ([]byte, error)
	Decode([]byte) (Record[D], error)
}

const (
	quizCorrect = "correct"
	quizWrong   = "wrong"
)

type quizWire struct {
	CurrentStreak       int             `json:"currentStreak"`
	BestStreak          int             `json:"bestStreak"`
	TotalCorrect        int             `json:"totalCorrect"`
	LastPlayedDate      datekey.DateKey `json:"lastPlayedDate"`
	TodayResult         *string         `json:"todayResult"`
	TodaySelectedAnswer *string         `json:"todaySelectedAnswer"`
}

// QuizCodec stores quiz progress.
type QuizCodec struct{}

func (QuizCodec) Encode(r Record[QuizDetail]) ([]byte, error) {
	w := quizWire{
		CurrentStreak:  r.CurrentStreak,
		BestStreak:     r.BestStreak,
		TotalCorrect:   r.TotalSuccesses,
		LastPlayedDate: r.LastPlayed,
	}
	switch r.TodayOutcome {
	case Success:
		w.TodayResult = ptr(quizCorrect)
	case Failure:
		w.TodayResult = ptr(quizWrong)
	}
	if r.TodayOutcome != NotPlayed {
		w.TodaySelectedAnswer = ptr(r.TodayDetail.SelectedAnswer)
	}
	return json.Marshal(w)
}

func (QuizCodec) Decode(data []byte) (Record[QuizDetail], error) {
	var w quizWire
	if err := json.Unmarshal(data, &w); err != nil {
		return Record[QuizDetail]{}, err
	}

	r := Record[QuizDetail]{
		LastPlayed:     w.LastPlayedDate,
		CurrentStreak:  w.CurrentStreak,
		BestStreak:     w.BestStreak,
		TotalSuccesses: w.TotalCorrect,
	}
	if w.TodayResult != nil {
		switch *w.TodayResult {
		case quizCorrect:
			r.TodayOutcome = Success
		case quizWrong:
			r.TodayOutcome = Failure
		default:
			return Record[QuizDetail]{}, fmt.Errorf("unknown todayResult %q", *w.TodayResult)
		}
	}
	if w.TodaySelectedAnswer != nil {
		r.TodayDetail.SelectedAnswer = *w.TodaySelectedAnswer
	}
	return normalize(r)
}

type memoryWire struct {
	CurrentStreak   int             `json:"currentStreak"`
	BestStreak      int             `json:"bestStreak"`
	GamesWon        int             `json:"gamesWon"`
	LastPlayedDate  datekey.DateKey `json:"lastPlayedDate"`
	TodayCompleted  bool            `json:"todayCompleted"`
	TodayMoves      int             `json:"todayMoves"`
	TodayTime       int             `json:"todayTime"`
	TodayDifficulty *string         `json:"todayDifficulty"`
}

// MemoryCodec stores memory game progress. The memory game has no failure
// outcome, so only completion is stored.
type MemoryCodec struct{}

func (MemoryCodec) Encode(r Record[MemoryDetail]) ([]byte, error) {
	w := memoryWire{
		CurrentStreak:  r.CurrentStreak,
		BestStreak:     r.BestStreak,
		GamesWon:       r.TotalSuccesses,
		LastPlayedDate: r.LastPlayed,
		TodayCompleted: r.TodayOutcome == Success,
	}
	if w.TodayCompleted {
		w.TodayMoves = r.TodayDetail.Moves
		w.TodayTime = r.TodayDetail.ElapsedSeconds
		w.TodayDifficulty = ptr(r.TodayDetail.Difficulty.String())
	}
	return json.Marshal(w)
}

func (MemoryCodec) Decode(data []byte) (Record[MemoryDetail], error) {
	var w memoryWire
	if err := json.Unmarshal(data, &w); err != nil {
		return Record[MemoryDetail]{}, err
	}

	r := Record[MemoryDetail]{
		LastPlayed:     w.LastPlayedDate,
		CurrentStreak:  w.CurrentStreak,
		BestStreak:     w.BestStreak,
		TotalSuccesses: w.GamesWon,
	}
	if w.TodayCompleted {
		r.TodayOutcome = Success
		r.TodayDetail.Moves = w.TodayMoves
		r.TodayDetail.ElapsedSeconds = w.TodayTime
		if w.TodayDifficulty != nil {
			d, err := content.ParseDifficulty(*w.TodayDifficulty)
			if err != nil {
				return Record[MemoryDetail]{}, err
			}
			r.TodayDetail.Difficulty = d
		}
	}
	return normalize(r)
}

// normalize rejects negative counters and lifts the best streak to the
// current one when a hand-edited record has them out of order.
func normalize[D any](r Record[D]) (Record[D], error) {
	if r.CurrentStreak < 0 || r.BestStreak < 0 || r.TotalSuccesses < 0 {
		var zero Record[D]
		return zero, fmt.Errorf("negative counters in progress record")
	}
	r.BestStreak = max(r.BestStreak, r.CurrentStreak)
	return r, nil
}

func ptr[T any](v T) *T { return &v }
