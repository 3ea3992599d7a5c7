package view

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/spendo/internal/editor"
	"github.com/MrJamesThe3rd/spendo/internal/gesture"
	"github.com/MrJamesThe3rd/spendo/internal/ledger"
	"github.com/MrJamesThe3rd/spendo/internal/listsync"
	"github.com/MrJamesThe3rd/spendo/internal/refcode"
)

type codeSource struct{}

func (codeSource) TypeCodes(context.Context) ([]ledger.ReferenceCode, error) {
	return readyCodes{}.TypeCodes(), nil
}

func (codeSource) PaymentCodes(context.Context) ([]ledger.ReferenceCode, error) {
	return readyCodes{}.PaymentCodes(), nil
}

func loadedCache(t *testing.T) refcode.Cache {
	t.Helper()

	c := refcode.New()
	c = c.Update(c.Load(codeSource{})())
	require.True(t, c.IsReady())

	return c
}

func newCalendar(t *testing.T) (CalendarModel, *ledger.MockGateway) {
	t.Helper()

	ctrl := gomock.NewController(t)
	gw := ledger.NewMockGateway(ctrl)

	deps := Deps{Ledger: ledger.NewService(gw), DoubleTapWindow: gesture.DoubleTapWindow, Currency: "원"}

	m := NewCalendarModel(deps)
	m.codes = loadedCache(t)

	return m, gw
}

// drain runs cmd and feeds every resulting message to m, expanding batches.
// Follow-up commands are not run.
func drain(m tea.Model, cmd tea.Cmd) tea.Model {
	if cmd == nil {
		return m
	}

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = drain(m, c)
		}

		return m
	}

	m, _ = m.Update(msg)

	return m
}

var errUnreachable = &ledger.NetworkError{Op: "listing entries", Err: errors.New("connection refused")}

func TestCalendar_SingleTapListsDay(t *testing.T) {
	m, gw := newCalendar(t)

	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	m.cursor = day

	gw.EXPECT().
		FetchByQuery(gomock.Any(), ledger.DayQuery(day)).
		Return([]ledger.Entry{{No: 1, Date: day, Title: "Coffee", Price: 4500, TypeCode: "EXP", PaymentCode: "CC01"}}, nil)

	next, cmd := m.tap(time.Now())
	require.NotNil(t, cmd)

	m = next.(CalendarModel)
	assert.False(t, m.editor.IsOpen())
	assert.True(t, m.day.Fetching())

	next, _ = m.Update(cmd())
	m = next.(CalendarModel)

	require.Len(t, m.day.Rows(), 1)
	assert.Contains(t, m.View(), "Coffee")
	assert.Contains(t, m.View(), "4,500원")
}

func TestCalendar_DoubleTapOpensCreate(t *testing.T) {
	m, gw := newCalendar(t)

	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	m.cursor = day

	gw.EXPECT().FetchByQuery(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	at := time.Now()

	next, _ := m.tap(at)
	m = next.(CalendarModel)

	next, _ = m.tap(at.Add(100 * time.Millisecond))
	m = next.(CalendarModel)

	require.Equal(t, editor.StateEditing, m.editor.State())
	assert.Equal(t, "2024-05-10", m.editor.Draft().Date)
	assert.Equal(t, "EXP", m.fields.Type)
	assert.NotNil(t, m.form)
}

func TestCalendar_SlowSecondTapOnlySelects(t *testing.T) {
	m, gw := newCalendar(t)

	m.cursor = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	gw.EXPECT().FetchByQuery(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	at := time.Now()

	next, _ := m.tap(at)
	m = next.(CalendarModel)

	next, _ = m.tap(at.Add(gesture.DoubleTapWindow))
	m = next.(CalendarModel)

	assert.False(t, m.editor.IsOpen())
}

func TestCalendar_SavedRefreshesDay(t *testing.T) {
	m, gw := newCalendar(t)

	gw.EXPECT().FetchByQuery(gomock.Any(), gomock.Any()).Return(nil, nil)

	next, cmd := m.Update(editor.SavedMsg{No: 7, Created: true})
	m = next.(CalendarModel)

	require.NotNil(t, cmd)
	assert.Equal(t, "Saved entry #7.", m.status)

	res, ok := cmd().(listsync.ResultMsg)
	require.True(t, ok)
	assert.NoError(t, res.Err)
}

func TestCalendar_FailedRefreshKeepsRows(t *testing.T) {
	m, gw := newCalendar(t)

	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	coffee := ledger.Entry{No: 1, Date: day, Title: "Coffee", Price: 4500, TypeCode: "EXP", PaymentCode: "CC01"}

	gw.EXPECT().FetchByQuery(gomock.Any(), ledger.DayQuery(day)).Return([]ledger.Entry{coffee}, nil)
	gw.EXPECT().FetchByQuery(gomock.Any(), ledger.DayQuery(day)).Return(nil, errUnreachable)

	var cmd tea.Cmd
	m.day, cmd = m.day.SetQuery(ledger.DayQuery(day))

	next, _ := m.Update(cmd())
	m = next.(CalendarModel)
	require.Contains(t, m.View(), "Coffee")

	m.day, cmd = m.day.Refresh()
	assert.Contains(t, m.View(), "Coffee")
	assert.Contains(t, m.View(), "Loading...")

	next, _ = m.Update(cmd())
	m = next.(CalendarModel)

	require.Equal(t, listsync.StateError, m.day.State())

	view := m.View()
	assert.Contains(t, view, "Coffee")
	assert.Contains(t, view, "Could not reach the ledger service")
}

func TestCalendar_MountLoadsCodes(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := ledger.NewMockGateway(ctrl)

	gw.EXPECT().FetchByQuery(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	gw.EXPECT().PaymentCodes(gomock.Any()).Return(readyCodes{}.PaymentCodes(), nil).AnyTimes()
	gw.EXPECT().TypeCodes(gomock.Any()).Return(nil, &ledger.NetworkError{Op: "type codes", Err: errors.New("timeout")})
	gw.EXPECT().TypeCodes(gomock.Any()).Return(readyCodes{}.TypeCodes(), nil)

	deps := Deps{Ledger: ledger.NewService(gw), DoubleTapWindow: gesture.DoubleTapWindow, Currency: "원"}

	first := NewCalendarModel(deps)
	mounted := drain(first, first.Init()).(CalendarModel)

	assert.Equal(t, refcode.StatusFailed, mounted.codes.Status())
	assert.Contains(t, mounted.View(), "Could not reach the ledger service")

	second := NewCalendarModel(deps)
	assert.Equal(t, refcode.StatusLoading, second.codes.Status())

	remounted := drain(second, second.Init()).(CalendarModel)
	assert.Equal(t, refcode.StatusReady, remounted.codes.Status())
}

func TestRenderMonth(t *testing.T) {
	may := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	out := renderMonth(may, may, may)

	assert.Contains(t, out, "May 2024")
	assert.Contains(t, out, "Mo Tu We Th Fr Sa Su")
	assert.Contains(t, out, "31")
}
