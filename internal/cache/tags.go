package cache

// Tags group cached responses so a mutation can drop every response it makes
// stale without knowing the cache keys.
const (
	TagActivePacts = "pacts"
	// TagUser marks every response that depends on who is signed in.
	TagUser = "user"
)

func PactTag(pactID string) string { return "pact:" + pactID }

func ActivitiesTag(pactID string) string { return "activities:" + pactID }

func UserActivitiesTag(pactID, userID string) string {
	return "activities:" + pactID + ":" + userID
}

func ProgressTag(userID string) string { return "progress:" + userID }

func LogsTag(pactID, userID string) string { return "logs:" + pactID + ":" + userID }

func LogTag(logID string) string { return "log:" + logID }

// Event is a mutation the client performed; it names the tags it invalidates.
type Event interface {
	Tags() []string
}

type PactCreated struct{}

func (PactCreated) Tags() []string { return []string{TagActivePacts} }

type ActivityCreated struct {
	PactID string
	UserID string
}

func (e ActivityCreated) Tags() []string {
	return []string{ActivitiesTag(e.PactID), UserActivitiesTag(e.PactID, e.UserID)}
}

type LogCreated struct {
	PactID string
	UserID string
}

func (e LogCreated) Tags() []string {
	return []string{ProgressTag(e.UserID), LogsTag(e.PactID, e.UserID)}
}

type PactJoined struct {
	PactID string
	UserID string
}

func (e PactJoined) Tags() []string {
	return []string{
		TagActivePacts,
		PactTag(e.PactID),
		UserActivitiesTag(e.PactID, e.UserID),
		ProgressTag(e.UserID),
	}
}

// UserChanged fires on signup and logout.
type UserChanged struct{}

func (UserChanged) Tags() []string { return []string{TagUser} }
