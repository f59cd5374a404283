package cli

import (
	"github.com/spf13/pflag"

	"github.com/katalvlaran/netxplore/anonymize"
	"github.com/katalvlaran/netxplore/filter"
	"github.com/katalvlaran/netxplore/pipeline"
)

// filterFlags binds the message filter to command-line flags.
type filterFlags struct {
	startDate, endDate string
	startTime, endTime string
	limit              int
	limitType          string
	minLength          int
	maxLength          int
	keywords           string
	username           string
	minMessages        int
	maxMessages        int
	activeUsers        int
	selectedUsers      string

	anonymize     bool
	anonymizeMode string
	anonPhase     string
}

func (f *filterFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.startDate, "start-date", "", "keep messages from this date (YYYY-MM-DD)")
	fs.StringVar(&f.endDate, "end-date", "", "keep messages up to this date (YYYY-MM-DD)")
	fs.StringVar(&f.startTime, "start-time", "", "start time of day or of start-date (HH:MM[:SS])")
	fs.StringVar(&f.endTime, "end-time", "", "end time of day or of end-date (HH:MM[:SS])")
	fs.IntVar(&f.limit, "limit", 0, "keep at most this many messages")
	fs.StringVar(&f.limitType, "limit-type", "", "which messages --limit keeps (first|last|all)")
	fs.IntVar(&f.minLength, "min-length", 0, "minimum message length")
	fs.IntVar(&f.maxLength, "max-length", 0, "maximum message length")
	fs.StringVar(&f.keywords, "keywords", "", "comma-separated keywords a message must contain one of")
	fs.StringVar(&f.username, "username", "", "keep only this author's messages")
	fs.IntVar(&f.minMessages, "min-messages", 0, "drop users with fewer messages")
	fs.IntVar(&f.maxMessages, "max-messages", 0, "drop users with more messages")
	fs.IntVar(&f.activeUsers, "active-users", 0, "keep the N most active users")
	fs.StringVar(&f.selectedUsers, "selected-users", "", "comma-separated users to keep")

	fs.BoolVar(&f.anonymize, "anonymize", false, "replace user names with aliases")
	fs.StringVar(&f.anonymizeMode, "anonymize-mode", "", "alias scheme (sequential|keyed)")
	fs.StringVar(&f.anonPhase, "anonymize-phase", "", "anonymize before or after metrics (early|late)")
}

func (f *filterFlags) options() filter.Options {
	return filter.Options{
		StartDate:     f.startDate,
		EndDate:       f.endDate,
		StartTime:     f.startTime,
		EndTime:       f.endTime,
		Limit:         f.limit,
		LimitType:     filter.LimitType(f.limitType),
		MinLength:     f.minLength,
		MaxLength:     f.maxLength,
		Keywords:      filter.SplitList(f.keywords),
		Username:      f.username,
		MinMessages:   f.minMessages,
		MaxMessages:   f.maxMessages,
		ActiveUsers:   f.activeUsers,
		SelectedUsers: filter.SplitList(f.selectedUsers),
	}
}

func (f *filterFlags) anonymization() pipeline.Anonymization {
	return pipeline.Anonymization{
		Enabled: f.anonymize,
		Mode:    anonymize.Mode(f.anonymizeMode),
		Phase:   anonymize.Phase(f.anonPhase),
	}
}
