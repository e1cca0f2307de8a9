package order_test

import (
	"testing"
	"time"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/core/domain/model/order"
	"portal/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDeliveryDate(t *testing.T, day string, slot kernel.TimeSlot) kernel.DeliveryDate {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", day)
	require.NoError(t, err)
	d, err := kernel.NewDeliveryDate(parsed, slot)
	require.NoError(t, err)
	return d
}

func newTestItem(t *testing.T) *order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), "Milk", "2 Liter", "", "Corner Store", nil)
	require.NoError(t, err)
	return item
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		"ORD-1001",
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Corner Store",
		mustDeliveryDate(t, "2025-01-10", kernel.Morning),
		"ring twice",
		[]*order.Item{newTestItem(t)},
	)
	require.NoError(t, err)
	return o
}

// assertFinalDateInvariant checks the aggregate-wide property: a final date
// exists only in a date-bound status, and a pending suggestion only in a
// pending-review status.
func assertFinalDateInvariant(t *testing.T, o *order.Order) {
	t.Helper()
	if o.FinalDate() != nil {
		assert.Contains(t,
			[]order.Status{order.DateForced, order.DateAccepted, order.Completed},
			o.Status())
	}
	if o.Status() == order.Cancelled {
		assert.Nil(t, o.FinalDate())
	}
	if o.SuggestedDate() != nil {
		assert.True(t, o.Status().IsPendingReview())
		assert.NotEqual(t, order.ActorUnknown, o.SuggestedBy())
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("creates_order_in_new_status", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Equal(t, order.New, o.Status())
		assert.Equal(t, "ORD-1001", o.OrderNumber())
		assert.False(t, o.IsLocked())
		assert.Nil(t, o.SuggestedDate())
		assert.Equal(t, order.ActorUnknown, o.SuggestedBy())
		assert.Nil(t, o.FinalDate())
		assert.False(t, o.IsDeleted())
		assert.Equal(t, int64(1), o.Version())
		assert.Len(t, o.Items(), 1)
		require.NoError(t, o.Validate())
	})

	t.Run("requires_at_least_one_item", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "ORD-1002", kernel.NewUUID(), kernel.NewUUID(), "",
			mustDeliveryDate(t, "2025-01-10", kernel.Morning), "", nil,
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires_order_number", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "", kernel.NewUUID(), kernel.NewUUID(), "",
			mustDeliveryDate(t, "2025-01-10", kernel.Morning), "",
			[]*order.Item{newTestItem(t)},
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_SuggestDate(t *testing.T) {
	t.Run("customer_suggestion_moves_to_admin_review", func(t *testing.T) {
		o := newTestOrder(t)
		d := mustDeliveryDate(t, "2025-02-01", kernel.Afternoon)

		require.NoError(t, o.SuggestDate(order.Customer, d))

		assert.Equal(t, order.PendingAdminReview, o.Status())
		require.NotNil(t, o.SuggestedDate())
		assert.True(t, d.IsEqual(*o.SuggestedDate()))
		assert.Equal(t, order.Customer, o.SuggestedBy())
		assertFinalDateInvariant(t, o)
	})

	t.Run("admin_suggestion_moves_to_customer_review", func(t *testing.T) {
		o := newTestOrder(t)
		d := mustDeliveryDate(t, "2025-02-02", kernel.Evening)

		require.NoError(t, o.SuggestDate(order.Admin, d))

		assert.Equal(t, order.PendingCustomerReview, o.Status())
		assert.Equal(t, order.Admin, o.SuggestedBy())
	})

	t.Run("same_author_overwrites_in_place_without_status_change", func(t *testing.T) {
		o := newTestOrder(t)
		first := mustDeliveryDate(t, "2025-02-01", kernel.Morning)
		second := mustDeliveryDate(t, "2025-02-05", kernel.Evening)

		require.NoError(t, o.SuggestDate(order.Customer, first))
		require.NoError(t, o.SuggestDate(order.Customer, second))

		assert.Equal(t, order.PendingAdminReview, o.Status())
		assert.True(t, second.IsEqual(*o.SuggestedDate()))
		assert.Equal(t, order.Customer, o.SuggestedBy())
	})

	t.Run("counter_suggestion_flips_review_side", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.SuggestDate(order.Customer, mustDeliveryDate(t, "2025-02-01", kernel.Morning)))

		counter := mustDeliveryDate(t, "2025-02-03", kernel.Afternoon)
		require.NoError(t, o.SuggestDate(order.Admin, counter))

		assert.Equal(t, order.PendingCustomerReview, o.Status())
		assert.Equal(t, order.Admin, o.SuggestedBy())
		assert.True(t, counter.IsEqual(*o.SuggestedDate()))
	})

	t.Run("rejected_when_locked", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.SetLock(true))

		err := o.SuggestDate(order.Customer, mustDeliveryDate(t, "2025-02-01", kernel.Morning))
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("rejected_after_force_cancel_or_completion", func(t *testing.T) {
		d := mustDeliveryDate(t, "2025-02-01", kernel.Morning)

		forced := newTestOrder(t)
		require.NoError(t, forced.ForceDate(d))
		require.ErrorIs(t, forced.SuggestDate(order.Customer, d), order.ErrInvalidTransition)

		cancelled := newTestOrder(t)
		require.NoError(t, cancelled.Cancel(time.Now()))
		require.ErrorIs(t, cancelled.SuggestDate(order.Customer, d), order.ErrInvalidTransition)

		completed := newTestOrder(t)
		require.NoError(t, completed.ForceDate(d))
		require.NoError(t, completed.Complete())
		require.ErrorIs(t, completed.SuggestDate(order.Admin, d), order.ErrInvalidTransition)
	})
}

func TestOrder_AcceptDate(t *testing.T) {
	t.Run("other_actor_accepts_suggestion", func(t *testing.T) {
		// Scenario B: customer suggests, admin accepts.
		o := newTestOrder(t)
		d := mustDeliveryDate(t, "2025-02-01", kernel.Afternoon)
		require.NoError(t, o.SuggestDate(order.Customer, d))

		require.NoError(t, o.AcceptDate(order.Admin))

		assert.Equal(t, order.DateAccepted, o.Status())
		require.NotNil(t, o.FinalDate())
		assert.True(t, d.IsEqual(*o.FinalDate()))
		assert.True(t, o.IsLocked())
		assert.Nil(t, o.SuggestedDate())
		assert.Equal(t, order.ActorUnknown, o.SuggestedBy())
		assertFinalDateInvariant(t, o)
	})

	t.Run("author_cannot_accept_own_suggestion", func(t *testing.T) {
		// Scenario C: admin suggested, admin accepts.
		o := newTestOrder(t)
		require.NoError(t, o.SuggestDate(order.Admin, mustDeliveryDate(t, "2025-02-01", kernel.Morning)))

		err := o.AcceptDate(order.Admin)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.PendingCustomerReview, o.Status())
		assert.Nil(t, o.FinalDate())
	})

	t.Run("customer_cannot_accept_own_suggestion", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.SuggestDate(order.Customer, mustDeliveryDate(t, "2025-02-01", kernel.Morning)))

		require.ErrorIs(t, o.AcceptDate(order.Customer), order.ErrInvalidTransition)
	})

	t.Run("rejected_without_pending_suggestion", func(t *testing.T) {
		o := newTestOrder(t)
		require.ErrorIs(t, o.AcceptDate(order.Admin), order.ErrInvalidTransition)
	})
}

func TestOrder_ForceDate(t *testing.T) {
	t.Run("sets_final_date_and_locks", func(t *testing.T) {
		// Scenario A: order in New, admin forces a different date.
		o := newTestOrder(t)
		d := mustDeliveryDate(t, "2025-01-12", kernel.Evening)

		require.NoError(t, o.ForceDate(d))

		assert.Equal(t, order.DateForced, o.Status())
		require.NotNil(t, o.FinalDate())
		assert.True(t, d.IsEqual(*o.FinalDate()))
		assert.True(t, o.IsLocked())
		assertFinalDateInvariant(t, o)
	})

	t.Run("bypasses_pending_suggestion", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.SuggestDate(order.Customer, mustDeliveryDate(t, "2025-02-01", kernel.Morning)))

		forced := mustDeliveryDate(t, "2025-02-10", kernel.Evening)
		require.NoError(t, o.ForceDate(forced))

		assert.Equal(t, order.DateForced, o.Status())
		assert.Nil(t, o.SuggestedDate())
		assert.True(t, forced.IsEqual(*o.FinalDate()))
	})

	t.Run("overrides_accepted_date", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.SuggestDate(order.Customer, mustDeliveryDate(t, "2025-02-01", kernel.Morning)))
		require.NoError(t, o.AcceptDate(order.Admin))

		override := mustDeliveryDate(t, "2025-02-15", kernel.Morning)
		require.NoError(t, o.ForceDate(override))

		assert.Equal(t, order.DateForced, o.Status())
		assert.True(t, override.IsEqual(*o.FinalDate()))
	})

	t.Run("rejected_for_terminal_orders", func(t *testing.T) {
		d := mustDeliveryDate(t, "2025-02-01", kernel.Morning)

		cancelled := newTestOrder(t)
		require.NoError(t, cancelled.Cancel(time.Now()))
		require.ErrorIs(t, cancelled.ForceDate(d), order.ErrInvalidTransition)

		completed := newTestOrder(t)
		require.NoError(t, completed.ForceDate(d))
		require.NoError(t, completed.Complete())
		require.ErrorIs(t, completed.ForceDate(d), order.ErrInvalidTransition)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("cancels_while_no_final_date", func(t *testing.T) {
		o := newTestOrder(t)
		now := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)

		require.NoError(t, o.Cancel(now))

		assert.Equal(t, order.Cancelled, o.Status())
		require.NotNil(t, o.CancelledAt())
		assert.Equal(t, now, *o.CancelledAt())
		assert.Nil(t, o.SuggestedDate())
		assertFinalDateInvariant(t, o)
	})

	t.Run("always_fails_once_final_date_is_set", func(t *testing.T) {
		accepted := newTestOrder(t)
		require.NoError(t, accepted.SuggestDate(order.Customer, mustDeliveryDate(t, "2025-02-01", kernel.Morning)))
		require.NoError(t, accepted.AcceptDate(order.Admin))
		require.ErrorIs(t, accepted.Cancel(time.Now()), order.ErrInvalidTransition)

		forced := newTestOrder(t)
		require.NoError(t, forced.ForceDate(mustDeliveryDate(t, "2025-02-01", kernel.Morning)))
		require.ErrorIs(t, forced.Cancel(time.Now()), order.ErrInvalidTransition)
	})

	t.Run("rejected_when_already_terminal", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel(time.Now()))
		require.ErrorIs(t, o.Cancel(time.Now()), order.ErrInvalidTransition)
	})
}

func TestOrder_LockUnlock(t *testing.T) {
	t.Run("lock_is_independent_of_status", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.SetLock(true))
		assert.True(t, o.IsLocked())
		assert.Equal(t, order.New, o.Status())

		require.NoError(t, o.SetLock(false))
		assert.False(t, o.IsLocked())
	})

	t.Run("unlock_reopens_suggestions_after_acceptance", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.SuggestDate(order.Customer, mustDeliveryDate(t, "2025-02-01", kernel.Morning)))
		require.NoError(t, o.AcceptDate(order.Admin))
		require.NoError(t, o.SetLock(false))

		reopened := mustDeliveryDate(t, "2025-02-08", kernel.Morning)
		require.NoError(t, o.SuggestDate(order.Customer, reopened))

		assert.Equal(t, order.PendingAdminReview, o.Status())
		assert.Nil(t, o.FinalDate())
		assert.True(t, reopened.IsEqual(*o.SuggestedDate()))
		assertFinalDateInvariant(t, o)
	})

	t.Run("reopened_negotiation_round_trips_through_restore", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.SuggestDate(order.Customer, mustDeliveryDate(t, "2025-02-01", kernel.Morning)))
		require.NoError(t, o.AcceptDate(order.Admin))
		require.NoError(t, o.SetLock(false))
		require.NoError(t, o.SuggestDate(order.Customer, mustDeliveryDate(t, "2025-02-08", kernel.Morning)))

		restored, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:          o.ID(),
			OrderNumber: o.OrderNumber(),
			CustomerID:  o.CustomerID(),
			AddressID:   o.AddressID(),
			Store:       o.Store(),
			Status:      o.Status(),
			Desired:     o.DesiredDate(),
			Suggested:   o.SuggestedDate(),
			SuggestedBy: o.SuggestedBy(),
			Final:       o.FinalDate(),
			IsLocked:    o.IsLocked(),
			Version:     3,
			Items:       o.Items(),
		})

		require.NoError(t, err)
		assert.Equal(t, order.PendingAdminReview, restored.Status())
		assert.Nil(t, restored.FinalDate())
	})
}

func TestOrder_Complete(t *testing.T) {
	t.Run("completes_date_bound_order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ForceDate(mustDeliveryDate(t, "2025-01-12", kernel.Evening)))

		require.NoError(t, o.Complete())

		assert.Equal(t, order.Completed, o.Status())
		assertFinalDateInvariant(t, o)
	})

	t.Run("rejected_without_final_date", func(t *testing.T) {
		o := newTestOrder(t)
		require.ErrorIs(t, o.Complete(), order.ErrInvalidTransition)
	})
}

func TestOrder_SoftDeleteRestore(t *testing.T) {
	t.Run("restore_preserves_prior_status", func(t *testing.T) {
		// Scenario E: delete then restore leaves the status untouched.
		o := newTestOrder(t)
		require.NoError(t, o.SuggestDate(order.Customer, mustDeliveryDate(t, "2025-02-01", kernel.Morning)))
		statusBefore := o.Status()

		require.NoError(t, o.MarkDeleted(time.Now()))
		assert.True(t, o.IsDeleted())

		require.NoError(t, o.Restore())
		assert.False(t, o.IsDeleted())
		assert.Equal(t, statusBefore, o.Status())
	})

	t.Run("every_command_except_restore_fails_on_deleted_order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.MarkDeleted(time.Now()))

		d := mustDeliveryDate(t, "2025-02-01", kernel.Morning)
		require.ErrorIs(t, o.SuggestDate(order.Customer, d), order.ErrOrderDeleted)
		require.ErrorIs(t, o.AcceptDate(order.Admin), order.ErrOrderDeleted)
		require.ErrorIs(t, o.ForceDate(d), order.ErrOrderDeleted)
		require.ErrorIs(t, o.Cancel(time.Now()), order.ErrOrderDeleted)
		require.ErrorIs(t, o.SetLock(true), order.ErrOrderDeleted)
		require.ErrorIs(t, o.Complete(), order.ErrOrderDeleted)
		require.ErrorIs(t, o.MarkDeleted(time.Now()), order.ErrOrderDeleted)
		require.ErrorIs(t, o.AddItem(newTestItem(t)), order.ErrOrderDeleted)
	})

	t.Run("restore_rejected_for_live_order", func(t *testing.T) {
		o := newTestOrder(t)
		require.ErrorIs(t, o.Restore(), order.ErrInvalidTransition)
	})
}

func TestOrder_SuggestThenAcceptRoundTrip(t *testing.T) {
	// Property: SuggestDate(d, s) then AcceptDate() makes (d, s) final.
	testCases := []struct {
		name   string
		author order.Actor
	}{
		{"customer_suggests_admin_accepts", order.Customer},
		{"admin_suggests_customer_accepts", order.Admin},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			o := newTestOrder(t)
			d := mustDeliveryDate(t, "2025-03-15", kernel.Afternoon)

			require.NoError(t, o.SuggestDate(tc.author, d))
			require.NoError(t, o.AcceptDate(tc.author.Other()))

			require.NotNil(t, o.FinalDate())
			assert.True(t, d.IsEqual(*o.FinalDate()))
			assert.True(t, o.IsLocked())
			assert.Equal(t, order.DateAccepted, o.Status())
		})
	}
}

func TestOrder_Items(t *testing.T) {
	t.Run("add_and_remove_items", func(t *testing.T) {
		o := newTestOrder(t)
		extra := newTestItem(t)

		require.NoError(t, o.AddItem(extra))
		assert.Len(t, o.Items(), 2)

		require.NoError(t, o.RemoveItem(extra.ID()))
		assert.Len(t, o.Items(), 1)
	})

	t.Run("removing_last_item_is_protected", func(t *testing.T) {
		// Scenario D.
		o := newTestOrder(t)
		onlyItem := o.Items()[0]

		err := o.RemoveItem(onlyItem.ID())

		require.ErrorIs(t, err, order.ErrLastItemProtected)
		assert.Len(t, o.Items(), 1)
	})

	t.Run("update_item_contents", func(t *testing.T) {
		o := newTestOrder(t)
		item := o.Items()[0]

		main, err := order.NewImageRef("https://img.example/1.jpg", true, 0)
		require.NoError(t, err)

		require.NoError(t, o.UpdateItem(item.ID(), "Oat Milk", "1 Liter", "fresh", "Dairy Corner", []order.ImageRef{main}))

		updated := o.Item(item.ID())
		assert.Equal(t, "Oat Milk", updated.ProductName())
		assert.Equal(t, "1 Liter", updated.Quantity())
		assert.Len(t, updated.ImageRefs(), 1)
	})

	t.Run("mutations_rejected_when_locked", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.SetLock(true))

		require.ErrorIs(t, o.AddItem(newTestItem(t)), order.ErrInvalidTransition)
		require.ErrorIs(t, o.RemoveItem(o.Items()[0].ID()), order.ErrInvalidTransition)
		require.ErrorIs(t,
			o.UpdateItem(o.Items()[0].ID(), "X", "1", "", "", nil),
			order.ErrInvalidTransition)
	})

	t.Run("mutations_rejected_in_date_bound_statuses", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ForceDate(mustDeliveryDate(t, "2025-02-01", kernel.Morning)))

		require.ErrorIs(t, o.AddItem(newTestItem(t)), order.ErrInvalidTransition)
	})

	t.Run("update_unknown_item_not_found", func(t *testing.T) {
		o := newTestOrder(t)
		err := o.UpdateItem(kernel.NewUUID(), "X", "1", "", "", nil)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("round_trips_full_state", func(t *testing.T) {
		o := newTestOrder(t)
		suggested := mustDeliveryDate(t, "2025-02-01", kernel.Morning)
		require.NoError(t, o.SuggestDate(order.Admin, suggested))

		restored, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:                     o.ID(),
			OrderNumber:            o.OrderNumber(),
			CustomerID:             o.CustomerID(),
			AddressID:              o.AddressID(),
			Store:                  o.Store(),
			Status:                 o.Status(),
			Desired:                o.DesiredDate(),
			Suggested:              o.SuggestedDate(),
			SuggestedBy:            o.SuggestedBy(),
			Final:                  o.FinalDate(),
			IsLocked:               o.IsLocked(),
			AdditionalInstructions: o.AdditionalInstructions(),
			Version:                4,
			Items:                  o.Items(),
		})

		require.NoError(t, err)
		assert.True(t, o.IsEqual(restored))
		assert.Equal(t, order.PendingCustomerReview, restored.Status())
		assert.Equal(t, order.Admin, restored.SuggestedBy())
		assert.Equal(t, int64(4), restored.Version())
	})

	t.Run("accepts_final_date_on_unlocked_order", func(t *testing.T) {
		// The persisted state of an accepted order after an admin unlock.
		o := newTestOrder(t)
		final := mustDeliveryDate(t, "2025-02-01", kernel.Morning)

		restored, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:          o.ID(),
			OrderNumber: o.OrderNumber(),
			CustomerID:  o.CustomerID(),
			AddressID:   o.AddressID(),
			Status:      order.DateAccepted,
			Desired:     o.DesiredDate(),
			Final:       &final,
			IsLocked:    false,
			Version:     2,
			Items:       o.Items(),
		})

		require.NoError(t, err)
		assert.False(t, restored.IsLocked())
		require.NotNil(t, restored.FinalDate())
		assert.True(t, final.IsEqual(*restored.FinalDate()))
	})

	t.Run("rejects_final_date_outside_date_bound_status", func(t *testing.T) {
		o := newTestOrder(t)
		final := mustDeliveryDate(t, "2025-02-01", kernel.Morning)

		_, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:          o.ID(),
			OrderNumber: o.OrderNumber(),
			CustomerID:  o.CustomerID(),
			AddressID:   o.AddressID(),
			Status:      order.PendingAdminReview,
			Desired:     o.DesiredDate(),
			Final:       &final,
			IsLocked:    false,
			Version:     2,
			Items:       o.Items(),
		})

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("rejects_suggestion_outside_pending_review", func(t *testing.T) {
		o := newTestOrder(t)
		suggested := mustDeliveryDate(t, "2025-02-01", kernel.Morning)

		_, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:          o.ID(),
			OrderNumber: o.OrderNumber(),
			CustomerID:  o.CustomerID(),
			AddressID:   o.AddressID(),
			Status:      order.New,
			Desired:     o.DesiredDate(),
			Suggested:   &suggested,
			SuggestedBy: order.Customer,
			Version:     2,
			Items:       o.Items(),
		})

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("rejects_invalid_version", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:          o.ID(),
			OrderNumber: o.OrderNumber(),
			CustomerID:  o.CustomerID(),
			AddressID:   o.AddressID(),
			Status:      order.New,
			Desired:     o.DesiredDate(),
			Version:     0,
			Items:       o.Items(),
		})

		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})
}
