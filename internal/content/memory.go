package content

// Tier is one row of the weekday difficulty table.
type Tier struct {
	Difficulty Difficulty
	Pairs      int
	Cols       int
	Rows       int
}

// Design is a card face.
type Design struct {
	ID    int
	Emoji string
	Name  string
}

// weekdayTiers is indexed Monday=0 .. Sunday=6.
var weekdayTiers = [...]Tier{
	{Difficulty: Easy, Pairs: 4, Cols: 2, Rows: 4},
	{Difficulty: Easy, Pairs: 6, Cols: 3, Rows: 4},
	{Difficulty: Medium, Pairs: 6, Cols: 3, Rows: 4},
	{Difficulty: Medium, Pairs: 8, Cols: 4, Rows: 4},
	{Difficulty: Hard, Pairs: 8, Cols: 4, Rows: 4},
	{Difficulty: Hard, Pairs: 10, Cols: 4, Rows: 5},
	{Difficulty: Expert, Pairs: 12, Cols: 4, Rows: 6},
}

// one entry per weekday
var _ [7]Tier = weekdayTiers

var designs = []Design{
	{ID: 1, Emoji: "😺", Name: "Happy Cat"},
	{ID: 2, Emoji: "😸", Name: "Grinning Cat"},
	{ID: 3, Emoji: "😻", Name: "Heart Eyes Cat"},
	{ID: 4, Emoji: "😼", Name: "Smirk Cat"},
	{ID: 5, Emoji: "😽", Name: "Kissing Cat"},
	{ID: 6, Emoji: "🙀", Name: "Surprised Cat"},
	{ID: 7, Emoji: "😿", Name: "Crying Cat"},
	{ID: 8, Emoji: "😾", Name: "Grumpy Cat"},
	{ID: 9, Emoji: "🐱", Name: "Cat Face"},
	{ID: 10, Emoji: "🐈", Name: "Walking Cat"},
	{ID: 11, Emoji: "🐈‍⬛", Name: "Black Cat"},
	{ID: 12, Emoji: "😹", Name: "Joy Cat"},
}

// TierForWeekday returns the tier for a Monday-based weekday index (0..6).
// Out of range indexes wrap around.
func TierForWeekday(mondayIndex int) Tier {
	n := len(weekdayTiers)
	return weekdayTiers[((mondayIndex%n)+n)%n]
}

// Designs returns a copy of the card face table.
func Designs() []Design {
	out := make([]Design, len(designs))
	copy(out, designs)
	return out
}

// DesignByID looks up a card face.
func DesignByID(id int) (Design, bool) {
	for _, d := range designs {
		if d.ID == id {
			return d, true
		}
	}
	return Design{}, false
}
