package service

import (
	"fmt"
	"testing"
	"time"

	"stagelink-backend/internal/domains/show/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

func singleShow(title, date string) model.Show {
	d := date
	return model.Show{
		ID:               uuid.New(),
		Title:            title,
		Date:             &d,
		City:             "Manila",
		Venue:            "CCP Little Theater",
		Status:           model.StatusApproved,
		ProductionStatus: model.ProductionOngoing,
	}
}

func recurringShow(title, start, end string) model.Show {
	s := singleShow(title, "")
	s.Date = nil
	s.Metadata = model.Metadata{Schedule: &model.ScheduleMeta{
		StartDate:    start,
		EndDate:      end,
		SelectedDays: []string{"Saturdays"},
	}}
	return s
}

func noRangeShow(title string, status model.ProductionStatus) model.Show {
	s := singleShow(title, "")
	s.Date = nil
	s.ProductionStatus = status
	return s
}

func titles(shows []model.Show) []string {
	out := make([]string, len(shows))
	for i, s := range shows {
		out[i] = s.Title
	}
	return out
}

func TestFilterShowsSearch(t *testing.T) {
	desc := "An original Filipino rock musical"
	withDesc := singleShow("Rak of Aegis", "2026-04-01")
	withDesc.Description = &desc

	snapshot := []model.Show{
		withDesc,
		singleShow("Himala", "2026-04-01"),
		singleShow("The Sound of Music", "2026-04-01"),
	}

	got := FilterShows(snapshot, FeedFilter{Query: "rak", Tab: TabUpcoming}, today)
	assert.Equal(t, []string{"Rak of Aegis"}, titles(got))

	got = FilterShows(snapshot, FeedFilter{Query: "MUSICAL", Tab: TabUpcoming}, today)
	assert.Equal(t, []string{"Rak of Aegis"}, titles(got))

	// Venue text is not searched
	got = FilterShows(snapshot, FeedFilter{Query: "ccp little", Tab: TabUpcoming}, today)
	assert.Empty(t, got)
}

func TestFilterShowsCityAndGenre(t *testing.T) {
	inMakati := singleShow("Makati Show", "2026-04-01")
	inMakati.City = "Makati"
	inMakati.Genres = []string{"Comedy"}
	inManila := singleShow("Manila Show", "2026-04-01")
	inManila.Genres = []string{"Drama"}

	snapshot := []model.Show{inMakati, inManila}

	got := FilterShows(snapshot, FeedFilter{City: "Makati", Tab: TabUpcoming}, today)
	assert.Equal(t, []string{"Makati Show"}, titles(got))

	got = FilterShows(snapshot, FeedFilter{Genre: "drama", Tab: TabUpcoming}, today)
	assert.Equal(t, []string{"Manila Show"}, titles(got))

	// Conjunctive: both criteria must hold
	got = FilterShows(snapshot, FeedFilter{City: "Makati", Genre: "Drama", Tab: TabUpcoming}, today)
	assert.Empty(t, got)
}

// "All" from the filter bars means no restriction, not a literal match
func TestFilterShowsAllSentinel(t *testing.T) {
	inMakati := singleShow("Makati Show", "2026-04-01")
	inMakati.City = "Makati"
	inManila := singleShow("Manila Show", "2026-04-01")
	inManila.Genres = []string{"Drama"}

	snapshot := []model.Show{inMakati, inManila}

	got := FilterShows(snapshot, FeedFilter{City: "All", Tab: TabUpcoming}, today)
	assert.Len(t, got, 2)

	got = FilterShows(snapshot, FeedFilter{Genre: "All", Tab: TabUpcoming}, today)
	assert.Len(t, got, 2)

	got = FilterShows(snapshot, FeedFilter{City: "All", Genre: "All", Tab: TabUpcoming}, today)
	assert.Len(t, got, 2)
}

func TestFilterShowsNicheGenres(t *testing.T) {
	campus := singleShow("Campus Production", "2026-04-01")
	campus.Niche = model.NicheUniversity
	community := singleShow("Community Production", "2026-04-01")
	community.Niche = model.NicheLocal

	snapshot := []model.Show{campus, community}

	got := FilterShows(snapshot, FeedFilter{Genre: "University", Tab: TabUpcoming}, today)
	assert.Equal(t, []string{"Campus Production"}, titles(got))

	got = FilterShows(snapshot, FeedFilter{Genre: "Local/Community", Tab: TabUpcoming}, today)
	assert.Equal(t, []string{"Community Production"}, titles(got))
}

func TestFilterShowsBuckets(t *testing.T) {
	upcoming := singleShow("Upcoming", "2026-04-01")
	runningNow := recurringShow("Running Now", "2026-03-01", "2026-03-31")
	lapsedOngoing := recurringShow("Lapsed But Ongoing", "2026-02-01", "2026-02-28")
	finished := recurringShow("Finished", "2026-01-01", "2026-01-31")
	finished.ProductionStatus = model.ProductionCompleted
	noRangeOngoing := noRangeShow("No Range Ongoing", model.ProductionOngoing)
	noRangeDone := noRangeShow("No Range Done", model.ProductionCompleted)

	snapshot := []model.Show{
		upcoming, runningNow, lapsedOngoing, finished, noRangeOngoing, noRangeDone,
	}

	got := FilterShows(snapshot, FeedFilter{Tab: TabUpcoming}, today)
	assert.Equal(t, []string{"Upcoming"}, titles(got))

	got = FilterShows(snapshot, FeedFilter{Tab: TabOngoing}, today)
	assert.ElementsMatch(t,
		[]string{"Running Now", "Lapsed But Ongoing", "No Range Ongoing"},
		titles(got))

	got = FilterShows(snapshot, FeedFilter{Tab: TabPast}, today)
	assert.ElementsMatch(t, []string{"Finished", "No Range Done"}, titles(got))
}

// Every show lands in exactly one of the three buckets
func TestFilterShowsBucketPartition(t *testing.T) {
	snapshot := []model.Show{
		singleShow("A", "2026-04-01"),
		singleShow("B", "2026-03-15"),
		singleShow("C", "2026-01-01"),
		recurringShow("D", "2026-03-01", "2026-03-31"),
		recurringShow("E", "2026-01-01", "2026-01-31"),
		noRangeShow("F", model.ProductionOngoing),
		noRangeShow("G", model.ProductionCompleted),
		noRangeShow("H", model.ProductionDraft),
	}
	// C and E are genuinely past
	snapshot[2].ProductionStatus = model.ProductionCompleted
	snapshot[4].ProductionStatus = model.ProductionCompleted

	counts := make(map[string]int)
	for _, tab := range []FeedTab{TabUpcoming, TabOngoing, TabPast} {
		for _, s := range FilterShows(snapshot, FeedFilter{Tab: tab}, today) {
			counts[s.Title]++
		}
	}

	for _, s := range snapshot {
		assert.LessOrEqual(t, counts[s.Title], 1, "show %s in multiple buckets", s.Title)
	}
	// A draft show with no range appears nowhere
	assert.Zero(t, counts["H"])
}

func TestFilterShowsFromDate(t *testing.T) {
	from := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	endsBefore := recurringShow("Ends Before", "2026-03-01", "2026-03-18")
	endsAfter := recurringShow("Ends After", "2026-03-01", "2026-03-25")
	noRange := noRangeShow("No Range", model.ProductionOngoing)

	got := FilterShows(
		[]model.Show{endsBefore, endsAfter, noRange},
		FeedFilter{Tab: TabOngoing, FromDate: &from},
		today,
	)
	assert.Equal(t, []string{"Ends After"}, titles(got))
}

func TestFilterShowsOrdering(t *testing.T) {
	late := singleShow("Late", "2026-05-01")
	early := singleShow("Early", "2026-04-01")
	featured := singleShow("Featured", "2026-06-01")
	featured.IsFeatured = true

	got := FilterShows([]model.Show{late, early, featured}, FeedFilter{Tab: TabUpcoming}, today)
	// Featured first, then soonest start
	assert.Equal(t, []string{"Featured", "Early", "Late"}, titles(got))

	pastA := singleShow("Older", "2026-01-01")
	pastA.ProductionStatus = model.ProductionCompleted
	pastB := singleShow("Newer", "2026-02-01")
	pastB.ProductionStatus = model.ProductionCompleted

	got = FilterShows([]model.Show{pastA, pastB}, FeedFilter{Tab: TabPast}, today)
	// Past tab shows the most recent run first
	assert.Equal(t, []string{"Newer", "Older"}, titles(got))
}

// Filtering an already filtered list changes nothing
func TestFilterShowsIdempotent(t *testing.T) {
	snapshot := []model.Show{
		singleShow("A", "2026-04-01"),
		singleShow("B", "2026-05-01"),
		recurringShow("C", "2026-03-01", "2026-03-31"),
	}
	filter := FeedFilter{Tab: TabUpcoming}

	once := FilterShows(snapshot, filter, today)
	twice := FilterShows(once, filter, today)
	assert.Equal(t, once, twice)
}

func TestPaginate(t *testing.T) {
	var filtered []model.Show
	for i := 0; i < 30; i++ {
		filtered = append(filtered, singleShow(fmt.Sprintf("Show %02d", i), "2026-04-01"))
	}

	page := Paginate(filtered, 1)
	assert.Len(t, page.Shows, 12)
	assert.Equal(t, 30, page.Total)
	assert.Equal(t, 12, page.Revealed)
	assert.True(t, page.HasMore)

	page = Paginate(filtered, 2)
	assert.Len(t, page.Shows, 24)
	assert.True(t, page.HasMore)

	// The last page clamps at the total
	page = Paginate(filtered, 3)
	assert.Len(t, page.Shows, 30)
	assert.Equal(t, 30, page.Revealed)
	assert.False(t, page.HasMore)

	page = Paginate(filtered, 99)
	assert.Len(t, page.Shows, 30)
}

// Revealing more pages only ever extends the prefix
func TestPaginateMonotonic(t *testing.T) {
	var filtered []model.Show
	for i := 0; i < 40; i++ {
		filtered = append(filtered, singleShow(fmt.Sprintf("Show %02d", i), "2026-04-01"))
	}

	prev := Paginate(filtered, 1)
	for pages := 2; pages <= 5; pages++ {
		cur := Paginate(filtered, pages)
		require.GreaterOrEqual(t, cur.Revealed, prev.Revealed)
		assert.Equal(t, prev.Shows, cur.Shows[:prev.Revealed])
		prev = cur
	}
}

func TestPaginateEmpty(t *testing.T) {
	page := Paginate(nil, 1)
	assert.Empty(t, page.Shows)
	assert.Zero(t, page.Total)
	assert.False(t, page.HasMore)
}
