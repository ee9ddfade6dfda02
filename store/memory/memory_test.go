package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/hourbank/generic"
	"github.com/warp/hourbank/store/memory"
	"github.com/warp/hourbank/timesheet"
)

var mar10 = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

func p(id string, hour int) timesheet.Punch {
	return timesheet.Punch{ID: id, OwnerID: "emp-1", Kind: timesheet.Entry, Timestamp: mar10.Add(time.Duration(hour) * time.Hour)}
}

func TestMemory_KeepsPunchesSorted(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.AppendPunch(ctx, p("c", 12)))
	require.NoError(t, store.AppendPunch(ctx, p("a", 8)))
	require.NoError(t, store.AppendPunch(ctx, p("b", 10)))

	got, err := store.PunchesInRange(ctx, "emp-1", mar10, mar10.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].ID, got[1].ID, got[2].ID})

	recent, err := store.RecentPunches(ctx, "emp-1", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, []string{recent[0].ID, recent[1].ID})
}

func TestMemory_RangeIsInclusive(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.AppendPunches(ctx, []timesheet.Punch{p("a", 8), p("b", 12)}))

	got, err := store.PunchesInRange(ctx, "emp-1", mar10.Add(8*time.Hour), mar10.Add(12*time.Hour))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestMemory_DuplicateBatchRejectedAtomically(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	err := store.AppendPunches(ctx, []timesheet.Punch{p("a", 8), p("a", 9)})
	assert.ErrorIs(t, err, generic.ErrDuplicatePunch)

	exists, _ := store.PunchExists(ctx, "a")
	assert.False(t, exists)
}

func TestMemory_ScheduleAndEmployee(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	ws, err := store.Schedule(ctx, "emp-1")
	require.NoError(t, err)
	assert.Nil(t, ws)

	require.NoError(t, store.SaveSchedule(ctx, timesheet.WorkSchedule{OwnerID: "emp-1", DailyHours: 6}))
	ws, err = store.Schedule(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 6.0, ws.DailyHours)

	_, err = store.Employee(ctx, "emp-1")
	assert.True(t, generic.IsNotFound(err))

	require.NoError(t, store.Reset(ctx))
	all, err := store.ListSchedules(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemory_RequestsNewestFirst(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	base := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

	for i, id := range []string{"req-a", "req-b", "req-c"} {
		require.NoError(t, store.SaveRequest(ctx, timesheet.Request{
			ID: id, OwnerID: "emp-1", Status: timesheet.RequestPending,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, store.SaveRequest(ctx, timesheet.Request{ID: "req-z", OwnerID: "emp-2", CreatedAt: base}))

	mine, err := store.ListRequests(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, "req-c", mine[0].ID)

	all, err := store.ListRequests(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	_, err = store.Request(ctx, "req-404")
	assert.True(t, generic.IsNotFound(err))
}

func TestMemory_NotificationsScopedToRecipient(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.AddNotifications(ctx, []timesheet.Notification{
		{ID: "n-1", RecipientID: "emp-1"},
		{ID: "n-2", RecipientID: "emp-1"},
		{ID: "n-3", RecipientID: "emp-2"},
	}))

	assert.True(t, generic.IsNotFound(store.MarkNotificationRead(ctx, "emp-2", "n-1")))
	require.NoError(t, store.MarkNotificationRead(ctx, "emp-1", "n-1"))

	unread, err := store.UnreadNotifications(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "n-2", unread[0].ID)

	require.NoError(t, store.Reset(ctx))
	unread, err = store.UnreadNotifications(ctx, "emp-2")
	require.NoError(t, err)
	assert.Empty(t, unread)
}
