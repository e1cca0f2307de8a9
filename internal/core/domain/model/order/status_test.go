package order_test

import (
	"testing"

	"portal/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	testCases := []struct {
		status order.Status
		want   string
	}{
		{order.New, "new"},
		{order.PendingAdminReview, "pending_admin_review"},
		{order.PendingCustomerReview, "pending_customer_review"},
		{order.DateForced, "date_forced"},
		{order.DateAccepted, "date_accepted"},
		{order.Completed, "completed"},
		{order.Cancelled, "cancelled"},
		{order.StatusUnknown, "unknown"},
		{order.Status(42), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.status.String())
		})
	}
}

func TestStatus_DisplayLabel(t *testing.T) {
	testCases := []struct {
		status order.Status
		want   string
	}{
		{order.New, "New"},
		{order.PendingAdminReview, "Awaiting store review"},
		{order.PendingCustomerReview, "Awaiting customer review"},
		{order.DateForced, "Date set by store"},
		{order.DateAccepted, "Date confirmed"},
		{order.Completed, "Completed"},
		{order.Cancelled, "Cancelled"},
		{order.StatusUnknown, "Unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.status.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.status.DisplayLabel())
		})
	}
}

func TestStatus_Validate(t *testing.T) {
	for s := order.New; s <= order.Cancelled; s++ {
		require.NoError(t, s.Validate())
	}
	require.Error(t, order.StatusUnknown.Validate())
	require.Error(t, order.Status(42).Validate())
}

func TestStatus_TransitionGuards(t *testing.T) {
	all := []order.Status{
		order.New, order.PendingAdminReview, order.PendingCustomerReview,
		order.DateForced, order.DateAccepted, order.Completed, order.Cancelled,
	}

	allowed := map[string]map[order.Status]bool{
		"suggest": {
			order.New: true, order.PendingAdminReview: true,
			order.PendingCustomerReview: true, order.DateAccepted: true,
		},
		"accept": {
			order.PendingAdminReview: true, order.PendingCustomerReview: true,
		},
		"force": {
			order.New: true, order.PendingAdminReview: true,
			order.PendingCustomerReview: true, order.DateForced: true,
			order.DateAccepted: true,
		},
		"cancel": {
			order.New: true, order.PendingAdminReview: true,
			order.PendingCustomerReview: true, order.DateForced: true,
			order.DateAccepted: true,
		},
		"item_mutation": {
			order.New: true, order.PendingAdminReview: true,
			order.PendingCustomerReview: true, order.DateAccepted: true,
		},
	}

	guards := map[string]func(order.Status) error{
		"suggest":       order.Status.ValidateSuggest,
		"accept":        order.Status.ValidateAccept,
		"force":         order.Status.ValidateForce,
		"cancel":        order.Status.ValidateCancel,
		"item_mutation": order.Status.ValidateItemMutation,
	}

	for name, guard := range guards {
		for _, s := range all {
			t.Run(name+"_from_"+s.String(), func(t *testing.T) {
				err := guard(s)
				if allowed[name][s] {
					require.NoError(t, err)
				} else {
					require.ErrorIs(t, err, order.ErrInvalidTransition)
				}
			})
		}
	}
}

func TestStatus_IsPendingReview(t *testing.T) {
	assert.True(t, order.PendingAdminReview.IsPendingReview())
	assert.True(t, order.PendingCustomerReview.IsPendingReview())
	assert.False(t, order.New.IsPendingReview())
	assert.False(t, order.DateAccepted.IsPendingReview())
}

func TestParseStatus(t *testing.T) {
	for _, s := range []order.Status{
		order.New, order.PendingAdminReview, order.PendingCustomerReview,
		order.DateForced, order.DateAccepted, order.Completed, order.Cancelled,
	} {
		parsed, err := order.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := order.ParseStatus("unknown")
	require.Error(t, err)

	_, err = order.ParseStatus("shipped")
	require.Error(t, err)
}
