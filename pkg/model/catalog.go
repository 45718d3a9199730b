package model

// CommonMedications are the anti-seizure medications offered as picker
// presets. Free-text names outside this list are allowed.
var CommonMedications = []string{
	"Valproate",
	"Levetiracetam",
	"Lamotrigine",
	"Carbamazepine",
	"Oxcarbazepine",
	"Topiramate",
	"Lacosamide",
	"Perampanel",
	"Clobazam",
	"Gabapentin",
}

// FollowUpItemOther is the designated free-text slot in the follow-up item
// selection. It never appears in a stored FollowUpConfig: during
// reconciliation it is replaced by the literal free text supplied with it,
// or removed when no text was given.
const FollowUpItemOther = "Other"

// FollowUpItems are the selectable follow-up actions.
var FollowUpItems = []string{
	"EEG",
	"Serum drug level",
	"Blood count / biochemistry",
	"Seizure frequency log",
	"Adverse effect screen",
	FollowUpItemOther,
}

// SeizureTypes are the ILAE seizure classifications used in the clinical
// summary.
var SeizureTypes = []string{
	"Focal",
	"Generalized",
	"Focal to bilateral tonic-clonic",
	"Unclassified",
}

// IsStandardFollowUpItem reports whether item is one of the predefined
// follow-up actions (as opposed to free text carried in via the Other slot).
func IsStandardFollowUpItem(item string) bool {
	for _, known := range FollowUpItems {
		if item == known {
			return true
		}
	}
	return false
}
