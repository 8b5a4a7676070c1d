package insights

import "time"

// day returns noon UTC on the given date.
func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}

func completed(t time.Time, rating int, activities []string, redFlags []string) Date {
	return Date{
		Time:       t,
		Rating:     rating,
		Activities: activities,
		RedFlags:   redFlags,
		Status:     StatusCompleted,
		DateNumber: 1,
		CreatedAt:  t,
	}
}

// fixtureHistory is a realistic journal: three bad dates in a row with the
// same red flag, followed by two good Monday hikes.
func fixtureHistory() []Date {
	return []Date{
		completed(day(2024, 1, 2), 2, []string{"Dinner"}, []string{"Rude to staff"}),
		completed(day(2024, 1, 3), 2, []string{"Drinks"}, []string{"Rude to staff", "Late"}),
		completed(day(2024, 1, 4), 2, []string{"Dinner"}, []string{"Rude to staff"}),
		completed(day(2024, 1, 8), 9, []string{"Hiking"}, nil),
		completed(day(2024, 1, 15), 9, []string{"Hiking", "Picnic"}, nil),
	}
}

// fixedRand returns index 0 and leaves shuffles untouched.
type fixedRand struct{}

func (fixedRand) Intn(int) int                { return 0 }
func (fixedRand) Shuffle(int, func(i, j int)) {}
