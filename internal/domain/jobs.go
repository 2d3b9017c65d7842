package domain

import "time"

// ReportCause tells whether a job came from the scheduler or from a chat
// command. It selects the monthly window branch and is otherwise only logged.
type ReportCause string

const (
	// CauseManual marks a job triggered by a recognized chat command.
	CauseManual ReportCause = "manual"
	// CauseScheduled marks a job fired by a periodic scheduler.
	CauseScheduled ReportCause = "scheduled"
)

// ReportKind names the three automated actions.
type ReportKind string

const (
	KindDailyReminder ReportKind = "daily_reminder"
	KindWeeklyReport  ReportKind = "weekly_report"
	KindMonthlyReport ReportKind = "monthly_report"
)

// ReportJob is one unit of work for the report worker.
type ReportJob struct {
	ID          string      `json:"job_id"`
	Kind        ReportKind  `json:"kind"`
	Cause       ReportCause `json:"cause"`
	RequestedAt time.Time   `json:"requested_at"`
}
