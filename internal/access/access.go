package access

import (
	"github.com/courselight/courselight/internal/domain"
)

// EnrollmentRecords is the cached view of a single (student, course) pair:
// whether an active enrollment exists and whether a pending request exists.
// The two come from independent queries, so anomalous combinations are
// possible on the client even when the server forbids them.
type EnrollmentRecords struct {
	HasActive  bool
	HasPending bool
}

// Derive computes the access state for one (student, course) pair.
//
// An unauthenticated caller always derives to none. If both an active and
// a pending record exist, active wins: it is the materially more
// permissive state, and refusing to pick one would crash gated views on a
// server anomaly the client cannot fix.
func Derive(authenticated bool, records EnrollmentRecords) domain.AccessState {
	if !authenticated {
		return domain.AccessNone
	}
	if records.HasActive {
		return domain.AccessActive
	}
	if records.HasPending {
		return domain.AccessPending
	}
	return domain.AccessNone
}

// FromWireStatus maps the upstream check-access status to an access state.
// Anything unrecognized derives to none: gated content must fail closed.
func FromWireStatus(status string) domain.AccessState {
	switch status {
	case "active":
		return domain.AccessActive
	case "pending":
		return domain.AccessPending
	default:
		return domain.AccessNone
	}
}

// GateLectures applies per-caller locks to a lecture list. The first
// freePreviewCount lectures (by position in the slice) are always
// unlocked; the rest are unlocked only for an active enrollment. Video
// URLs are cleared on locked lectures so a locked row carries nothing
// worth leaking.
func GateLectures(lectures []domain.Lecture, state domain.AccessState, freePreviewCount int) []domain.GatedLecture {
	gated := make([]domain.GatedLecture, 0, len(lectures))
	for i, lecture := range lectures {
		locked := i >= freePreviewCount && state != domain.AccessActive
		if locked {
			lecture.VideoURL = ""
		}
		gated = append(gated, domain.GatedLecture{
			Lecture: lecture,
			Locked:  locked,
		})
	}
	return gated
}
