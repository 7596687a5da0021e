package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal/internal/portal/models"
	"portal/internal/portal/store"
	dErrors "portal/pkg/domain-errors"
	"portal/pkg/testutil"
)

var fixedNow = time.Date(2026, 2, 4, 10, 0, 0, 0, time.FixedZone("CET", 3600))

// recordingNotifier captures reminders handed to the collaborator boundary.
type recordingNotifier struct {
	sent []Reminder
}

func (n *recordingNotifier) Send(_ context.Context, r Reminder) error {
	n.sent = append(n.sent, r)
	return nil
}

func newTestService(t *testing.T) (*Service, store.Stores, *recordingNotifier, context.Context) {
	t.Helper()
	ctx := testutil.ContextAt(fixedNow)
	st := store.NewInMemory()
	require.NoError(t, store.SeedDemoData(ctx, st))

	notifier := &recordingNotifier{}
	svc, err := New(st, WithNotifier(notifier))
	require.NoError(t, err)
	return svc, st, notifier, ctx
}

func activitiesOfKind(t *testing.T, svc *Service, ctx context.Context, clientID string, kind models.ActivityKind) []models.Activity {
	t.Helper()
	all, err := svc.Activities(ctx, clientID)
	require.NoError(t, err)
	var out []models.Activity
	for _, a := range all {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

func TestSetRequestStatusCascadesIntoDeadlines(t *testing.T) {
	svc, st, _, ctx := newTestService(t)

	// dl-03 and dl-04 are both gated on rq-2001, seeded as missing.
	dl, err := st.Deadlines.FindByID(ctx, "dl-03")
	require.NoError(t, err)
	require.Equal(t, models.StateBlocked, dl.State)

	_, err = svc.SetRequestStatus(ctx, "rq-2001", models.StatusWaiting)
	require.NoError(t, err)

	for _, id := range []string{"dl-03", "dl-04"} {
		dl, err = st.Deadlines.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.StateRisk, dl.State, id)
	}

	_, err = svc.SetRequestStatus(ctx, "rq-2001", models.StatusReceived)
	require.NoError(t, err)

	for _, id := range []string{"dl-03", "dl-04"} {
		dl, err = st.Deadlines.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.StateOK, dl.State, id)
	}
}

func TestSetRequestStatusStoredStateNeverStale(t *testing.T) {
	svc, st, _, ctx := newTestService(t)

	_, err := svc.SetRequestStatus(ctx, "rq-1001", models.StatusMissing)
	require.NoError(t, err)

	requests, err := st.Requests.List(ctx)
	require.NoError(t, err)
	deadlines, err := st.Deadlines.List(ctx)
	require.NoError(t, err)
	for _, d := range deadlines {
		assert.Equal(t, models.ComputeDeadlineState(d, requests), d.State, d.ID)
	}
}

func TestSetRequestStatusAppendsActivityAndStampsDate(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	before := len(activitiesOfKind(t, svc, ctx, "cl-001", models.KindStatus))

	updated, err := svc.SetRequestStatus(ctx, "rq-1001", models.StatusReceived)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-04", updated.UpdatedAt)

	after := activitiesOfKind(t, svc, ctx, "cl-001", models.KindStatus)
	require.Len(t, after, before+1)
	assert.Equal(t, models.ActorFirm, after[0].Who)
	assert.Contains(t, after[0].Title, "received")
	assert.Contains(t, after[0].Detail, "rq-1001")
}

func TestSetRequestStatusUnknownID(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	logBefore, err := svc.Activities(ctx, "")
	require.NoError(t, err)

	_, err = svc.SetRequestStatus(ctx, "rq-9999", models.StatusWaiting)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))

	logAfter, err := svc.Activities(ctx, "")
	require.NoError(t, err)
	assert.Len(t, logAfter, len(logBefore), "failed operations leave no audit trace")
}

func TestDeadlineWithoutDependenciesKeepsStoredState(t *testing.T) {
	svc, st, _, ctx := newTestService(t)

	require.NoError(t, st.Deadlines.Save(ctx, models.Deadline{
		ID: "dl-99", ClientID: "cl-001", Title: "Annual review", Date: "2026-03-01",
		Category: models.CategoryReview, State: models.StateRisk,
	}))

	_, err := svc.SetRequestStatus(ctx, "rq-1001", models.StatusReceived)
	require.NoError(t, err)

	dl, err := st.Deadlines.FindByID(ctx, "dl-99")
	require.NoError(t, err)
	assert.Equal(t, models.StateRisk, dl.State)

	deadlines, err := svc.Deadlines(ctx)
	require.NoError(t, err)
	for _, d := range deadlines {
		if d.ID == "dl-99" {
			assert.Equal(t, models.StateRisk, d.State)
		}
	}
}

func TestDeadlinesReadRecomputesDerivedState(t *testing.T) {
	svc, st, _, ctx := newTestService(t)

	// Corrupt the cached projection behind the service's back; reads must
	// still deliver the derived value.
	dl, err := st.Deadlines.FindByID(ctx, "dl-03")
	require.NoError(t, err)
	dl.State = models.StateOK
	require.NoError(t, st.Deadlines.Save(ctx, dl))

	deadlines, err := svc.Deadlines(ctx)
	require.NoError(t, err)
	for _, d := range deadlines {
		if d.ID == "dl-03" {
			assert.Equal(t, models.StateBlocked, d.State, "rq-2001 is still missing")
		}
	}
}

func TestAddRequestFileForcesReceived(t *testing.T) {
	svc, st, _, ctx := newTestService(t)

	uploadsBefore := len(activitiesOfKind(t, svc, ctx, "cl-001", models.KindUpload))

	updated, err := svc.AddRequestFile(ctx, "rq-1001", models.FileRecord{
		Name: "contract.pdf", Size: "1.2 MB", UploadedAt: "2026-02-10", By: models.ActorClient,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusReceived, updated.Status)
	require.Len(t, updated.Files, 1)
	assert.Equal(t, "contract.pdf", updated.Files[0].Name)

	uploads := activitiesOfKind(t, svc, ctx, "cl-001", models.KindUpload)
	require.Len(t, uploads, uploadsBefore+1)
	assert.Equal(t, models.ActorClient, uploads[0].Who)
	assert.Contains(t, uploads[0].Title, "contract.pdf")

	// dl-01 is gated on rq-1001 and must have been refreshed.
	dl, err := st.Deadlines.FindByID(ctx, "dl-01")
	require.NoError(t, err)
	assert.Equal(t, models.StateOK, dl.State)
}

func TestAddRequestFilePrependsToExistingFiles(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	updated, err := svc.AddRequestFile(ctx, "rq-1002", models.FileRecord{Name: "ledger.xlsx", Size: "44 KB"})
	require.NoError(t, err)

	require.Len(t, updated.Files, 3)
	assert.Equal(t, "ledger.xlsx", updated.Files[0].Name)
	assert.Equal(t, models.ActorClient, updated.Files[0].By, "uploader defaults to the client side")
	assert.Equal(t, "2026-02-04", updated.Files[0].UploadedAt, "upload date defaults to today")
}

func TestSetRequestNoteLogsComment(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	commentsBefore := len(activitiesOfKind(t, svc, ctx, "cl-002", models.KindComment))

	updated, err := svc.SetRequestNote(ctx, "rq-2001", "Client promised delivery by Friday.")
	require.NoError(t, err)
	assert.Equal(t, "Client promised delivery by Friday.", updated.Note)

	comments := activitiesOfKind(t, svc, ctx, "cl-002", models.KindComment)
	assert.Len(t, comments, commentsBefore+1)
}

func TestSetRequestAssigneeIsSilent(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	logBefore, err := svc.Activities(ctx, "")
	require.NoError(t, err)

	counsel := "J. Dvorak"
	updated, err := svc.SetRequestAssignee(ctx, "rq-1001", &counsel)
	require.NoError(t, err)
	assert.Equal(t, counsel, updated.Assignee)

	updated, err = svc.SetRequestAssignee(ctx, "rq-1001", nil)
	require.NoError(t, err)
	assert.Empty(t, updated.Assignee)

	logAfter, err := svc.Activities(ctx, "")
	require.NoError(t, err)
	assert.Len(t, logAfter, len(logBefore), "assignee changes log nothing")
}

func TestGenerateChecklistDeduplicates(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	// cl-001 already has contract-review and case-records rows for 2026-01.
	added, err := svc.GenerateChecklist(ctx, "cl-001", "2026-01", nil)
	require.NoError(t, err)
	require.Len(t, added, 3)
	for _, r := range added {
		assert.Equal(t, models.StatusMissing, r.Status)
		assert.Equal(t, "J. Novak", r.Assignee)
		assert.NotEqual(t, "contract-review", r.TemplateKey)
		assert.NotEqual(t, "case-records", r.TemplateKey)
	}

	again, err := svc.GenerateChecklist(ctx, "cl-001", "2026-01", nil)
	require.NoError(t, err)
	assert.Empty(t, again, "identical generation adds nothing")

	// Both runs are recorded, including the one that added zero rows.
	statuses := activitiesOfKind(t, svc, ctx, "cl-001", models.KindStatus)
	var generations int
	for _, a := range statuses {
		if strings.Contains(a.Title, "checklist") {
			generations++
		}
	}
	assert.Equal(t, 2, generations)
}

func TestGenerateChecklistFiltersTypes(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	added, err := svc.GenerateChecklist(ctx, "cl-003", "2026-01", []models.RequestType{models.TypeEvidence})
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, models.TypeEvidence, added[0].Type)

	statuses := activitiesOfKind(t, svc, ctx, "cl-003", models.KindStatus)
	require.NotEmpty(t, statuses)
	assert.Contains(t, statuses[0].Detail, "Types: evidence")
}

func TestGenerateChecklistNewRowsListFirst(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	added, err := svc.GenerateChecklist(ctx, "cl-002", "2026-02", []models.RequestType{models.TypeContract, models.TypeRecords})
	require.NoError(t, err)
	require.Len(t, added, 2)

	all, err := svc.Requests(ctx, RequestFilter{})
	require.NoError(t, err)
	require.True(t, len(all) >= 2)
	assert.Equal(t, added[0].ID, all[0].ID, "generated batch keeps catalog order at the head")
	assert.Equal(t, added[1].ID, all[1].ID)
}

func TestGenerateChecklistUnknownClient(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	_, err := svc.GenerateChecklist(ctx, "cl-999", "2026-02", nil)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}

func TestPublishReportIsIdempotent(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	first, err := svc.PublishReport(ctx, "rp-001")
	require.NoError(t, err)
	require.NotNil(t, first.PublishedAt)
	assert.True(t, first.PublishedAt.Equal(fixedNow))

	later := testutil.ContextAt(fixedNow.Add(2 * time.Hour))
	second, err := svc.PublishReport(later, "rp-001")
	require.NoError(t, err)
	require.NotNil(t, second.PublishedAt)
	assert.True(t, second.PublishedAt.Equal(fixedNow.Add(2*time.Hour)), "republishing overwrites the timestamp")

	statuses := activitiesOfKind(t, svc, ctx, "cl-001", models.KindStatus)
	var published int
	for _, a := range statuses {
		if strings.Contains(a.Title, "Report published") {
			published++
		}
	}
	assert.Equal(t, 2, published, "each publish call logs once")
}

func TestSendReminderForDeadline(t *testing.T) {
	svc, st, notifier, ctx := newTestService(t)

	// dl-01 depends on rq-1001, seeded as waiting.
	err := svc.SendReminderForDeadline(ctx, "dl-01", models.ChannelEmail, "")
	require.NoError(t, err)

	request, err := st.Requests.FindByID(ctx, "rq-1001")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-04", request.LastReminderAt)
	assert.Equal(t, models.StatusWaiting, request.Status, "reminders never change status")

	reminders := activitiesOfKind(t, svc, ctx, "cl-001", models.KindReminder)
	require.Len(t, reminders, 1)
	assert.Contains(t, reminders[0].Detail, "email")
	assert.Contains(t, reminders[0].Detail, "contract")

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "dl-01", notifier.sent[0].DeadlineID)
	assert.Equal(t, models.ChannelEmail, notifier.sent[0].Channel)
	assert.Equal(t, []string{"maly@techstart.example", "jana.zelena@techstart.example"}, notifier.sent[0].Recipients)
}

func TestSendReminderSkipsReceivedRequests(t *testing.T) {
	svc, st, _, ctx := newTestService(t)

	// dl-02 depends on rq-1002, already received: nothing to stamp.
	err := svc.SendReminderForDeadline(ctx, "dl-02", models.ChannelPortal, "")
	require.NoError(t, err)

	request, err := st.Requests.FindByID(ctx, "rq-1002")
	require.NoError(t, err)
	assert.Empty(t, request.LastReminderAt)

	reminders := activitiesOfKind(t, svc, ctx, "cl-001", models.KindReminder)
	require.Len(t, reminders, 1)
	assert.Contains(t, reminders[0].Detail, "Missing: none")
}

func TestSendReminderTruncatesOverride(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	override := strings.Repeat("příliš dlouhá zpráva ", 20)
	err := svc.SendReminderForDeadline(ctx, "dl-03", models.ChannelEmail, override)
	require.NoError(t, err)

	reminders := activitiesOfKind(t, svc, ctx, "cl-002", models.KindReminder)
	require.NotEmpty(t, reminders)
	detail := []rune(reminders[0].Detail)
	require.Len(t, detail, 161, "160 runes plus the ellipsis marker")
	assert.Equal(t, '…', detail[160])
}

func TestSendReminderShortOverridePassesThrough(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	err := svc.SendReminderForDeadline(ctx, "dl-03", models.ChannelEmail, "Please deliver the evidence bundle.")
	require.NoError(t, err)

	reminders := activitiesOfKind(t, svc, ctx, "cl-002", models.KindReminder)
	require.NotEmpty(t, reminders)
	assert.Equal(t, "Please deliver the evidence bundle.", reminders[0].Detail)
}

func TestSendReminderUnknownDeadline(t *testing.T) {
	svc, _, notifier, ctx := newTestService(t)

	err := svc.SendReminderForDeadline(ctx, "dl-999", models.ChannelEmail, "")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
	assert.Empty(t, notifier.sent)
}

func TestUpdateReminderRuleClampsAndStaysSilent(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	logBefore, err := svc.Activities(ctx, "")
	require.NoError(t, err)

	days := 0
	rule, err := svc.UpdateReminderRule(ctx, "cl-001", ReminderRulePatch{DaysBefore: &days})
	require.NoError(t, err)
	assert.Equal(t, models.MinReminderDaysBefore, rule.DaysBefore)

	days = 99
	rule, err = svc.UpdateReminderRule(ctx, "cl-001", ReminderRulePatch{DaysBefore: &days})
	require.NoError(t, err)
	assert.Equal(t, models.MaxReminderDaysBefore, rule.DaysBefore)

	enabled := false
	portalChannel := models.ChannelPortal
	rule, err = svc.UpdateReminderRule(ctx, "cl-001", ReminderRulePatch{Enabled: &enabled, Channel: &portalChannel})
	require.NoError(t, err)
	assert.False(t, rule.Enabled)
	assert.Equal(t, models.ChannelPortal, rule.Channel)

	logAfter, err := svc.Activities(ctx, "")
	require.NoError(t, err)
	assert.Len(t, logAfter, len(logBefore), "rule changes log nothing")
}

func TestReminderRuleImplicitDefault(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	rule, err := svc.ReminderRule(ctx, "cl-unconfigured")
	require.NoError(t, err)
	assert.True(t, rule.Enabled)
	assert.Equal(t, 7, rule.DaysBefore)
	assert.Equal(t, models.ChannelEmail, rule.Channel)
}

func TestUpdateClient(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	name := "TECHSTART Group Ltd."
	counsel := "M. Svobodova"
	updated, err := svc.UpdateClient(ctx, "cl-001", ClientPatch{Name: &name, LeadCounsel: &counsel})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, counsel, updated.LeadCounsel)
	assert.Equal(t, "2024/COM/142", updated.CaseNumber, "unpatched fields survive")

	_, err = svc.UpdateClient(ctx, "cl-999", ClientPatch{Name: &name})
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}

func TestActivityOrderingAcrossOperations(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	_, err := svc.SetRequestStatus(ctx, "rq-2001", models.StatusWaiting)
	require.NoError(t, err)
	_, err = svc.SetRequestNote(ctx, "rq-2001", "chasing client")
	require.NoError(t, err)

	log, err := svc.Activities(ctx, "cl-002")
	require.NoError(t, err)
	require.True(t, len(log) >= 2)
	assert.Equal(t, models.KindComment, log[0].Kind, "newest entry first")
	assert.Equal(t, models.KindStatus, log[1].Kind)
}
