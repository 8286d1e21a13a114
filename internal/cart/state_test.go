package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shubhangam-Singh/food-delivery-app/pkg/enums"
)

func snapshot(name, price string) ItemSnapshot {
	return ItemSnapshot{
		MenuItemID: uuid.New(),
		Name:       name,
		Price:      decimal.RequireFromString(price),
		SpiceLevel: enums.SpiceLevelMild,
	}
}

func restaurantInfo(name, fee string) RestaurantInfo {
	return RestaurantInfo{
		ID:          uuid.New(),
		Name:        name,
		DeliveryFee: decimal.RequireFromString(fee),
		MinOrder:    decimal.RequireFromString("100"),
	}
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	info := restaurantInfo("Spice Villa", "30")
	item := snapshot("Paneer Tikka", "180")

	state := Empty()
	for i := 0; i < 3; i++ {
		var notice *Notice
		state, notice = Reduce(state, AddItem{Item: item, Restaurant: info})
		require.NotNil(t, notice)
		assert.Equal(t, NoticeItemAdded, notice.Kind)
		assert.Equal(t, "Paneer Tikka", notice.ItemName)
	}

	require.Len(t, state.Items, 1)
	assert.Equal(t, 3, state.Items[0].Quantity)
	assert.Equal(t, "", state.Items[0].SpecialInstructions)
	require.NotNil(t, state.RestaurantID)
	assert.Equal(t, info.ID, *state.RestaurantID)
}

func TestAddItemAppendsNewLines(t *testing.T) {
	info := restaurantInfo("Spice Villa", "30")

	state := Empty()
	state, _ = Reduce(state, AddItem{Item: snapshot("Paneer Tikka", "180"), Restaurant: info})
	state, _ = Reduce(state, AddItem{Item: snapshot("Samosa", "40"), Restaurant: info})

	require.Len(t, state.Items, 2)
	assert.Equal(t, 1, state.Items[0].Quantity)
	assert.Equal(t, 1, state.Items[1].Quantity)
	assert.Equal(t, 2, state.ItemCount())
}

func TestCrossRestaurantAddStagesPending(t *testing.T) {
	infoA := restaurantInfo("Spice Villa", "30")
	infoB := restaurantInfo("Noodle House", "20")
	itemA := snapshot("Paneer Tikka", "180")
	itemB := snapshot("Hakka Noodles", "150")

	state := Empty()
	state, _ = Reduce(state, AddItem{Item: itemA, Restaurant: infoA})

	next, notice := Reduce(state, AddItem{Item: itemB, Restaurant: infoB})
	assert.Nil(t, notice, "staging must not emit a notice")
	assert.Equal(t, state.Items, next.Items, "items never mutate on a cross-restaurant add")
	require.NotNil(t, next.PendingAdd)
	assert.Equal(t, itemB.MenuItemID, next.PendingAdd.Item.MenuItemID)
	assert.True(t, next.ShowRestaurantChange)
	require.NotNil(t, next.RestaurantID)
	assert.Equal(t, infoA.ID, *next.RestaurantID, "binding stays with the original restaurant")
}

func TestReplaceCartAdoptsPendingItem(t *testing.T) {
	infoA := restaurantInfo("Spice Villa", "30")
	infoB := restaurantInfo("Noodle House", "20")
	itemA := snapshot("Paneer Tikka", "180")
	itemB := snapshot("Hakka Noodles", "150")

	state := Empty()
	state, _ = Reduce(state, AddItem{Item: itemA, Restaurant: infoA})
	state, _ = Reduce(state, UpdateQuantity{MenuItemID: itemA.MenuItemID, Quantity: 4})
	state, _ = Reduce(state, AddItem{Item: itemB, Restaurant: infoB})

	next, notice := Reduce(state, ReplaceCart{})
	require.NotNil(t, notice)
	assert.Equal(t, NoticeItemAdded, notice.Kind)
	require.Len(t, next.Items, 1)
	assert.Equal(t, itemB.MenuItemID, next.Items[0].MenuItemID)
	assert.Equal(t, 1, next.Items[0].Quantity, "adopted line always starts at quantity 1")
	assert.Equal(t, "", next.Items[0].SpecialInstructions)
	require.NotNil(t, next.RestaurantID)
	assert.Equal(t, infoB.ID, *next.RestaurantID)
	assert.Nil(t, next.PendingAdd)
	assert.False(t, next.ShowRestaurantChange)
}

func TestReplaceCartWithoutPendingIsNoop(t *testing.T) {
	info := restaurantInfo("Spice Villa", "30")
	item := snapshot("Paneer Tikka", "180")

	state := Empty()
	state, _ = Reduce(state, AddItem{Item: item, Restaurant: info})

	next, notice := Reduce(state, ReplaceCart{})
	assert.Nil(t, notice)
	assert.Equal(t, state.Items, next.Items)
	require.NotNil(t, next.RestaurantID)
	assert.Equal(t, info.ID, *next.RestaurantID)
}

func TestCancelRestaurantChangeKeepsItems(t *testing.T) {
	infoA := restaurantInfo("Spice Villa", "30")
	infoB := restaurantInfo("Noodle House", "20")

	state := Empty()
	state, _ = Reduce(state, AddItem{Item: snapshot("Paneer Tikka", "180"), Restaurant: infoA})
	state, _ = Reduce(state, AddItem{Item: snapshot("Hakka Noodles", "150"), Restaurant: infoB})
	require.NotNil(t, state.PendingAdd)

	next, _ := Reduce(state, CancelRestaurantChange{})
	assert.Nil(t, next.PendingAdd)
	assert.False(t, next.ShowRestaurantChange)
	require.Len(t, next.Items, 1)
	assert.Equal(t, "Paneer Tikka", next.Items[0].Name)
}

func TestRemoveItem(t *testing.T) {
	info := restaurantInfo("Spice Villa", "30")
	item := snapshot("Paneer Tikka", "180")

	state := Empty()
	state, _ = Reduce(state, AddItem{Item: item, Restaurant: info})

	next, notice := Reduce(state, RemoveItem{MenuItemID: item.MenuItemID})
	require.NotNil(t, notice)
	assert.Equal(t, NoticeItemRemoved, notice.Kind)
	assert.Equal(t, "Paneer Tikka", notice.ItemName)
	assert.Empty(t, next.Items)

	again, notice := Reduce(next, RemoveItem{MenuItemID: item.MenuItemID})
	assert.Nil(t, notice, "removing an absent id is silent")
	assert.Empty(t, again.Items)
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	info := restaurantInfo("Spice Villa", "30")
	item := snapshot("Paneer Tikka", "180")

	state := Empty()
	state, _ = Reduce(state, AddItem{Item: item, Restaurant: info})

	next, notice := Reduce(state, UpdateQuantity{MenuItemID: item.MenuItemID, Quantity: 0})
	require.NotNil(t, notice)
	assert.Equal(t, NoticeItemRemoved, notice.Kind)
	assert.Empty(t, next.Items)

	state, _ = Reduce(state, UpdateQuantity{MenuItemID: item.MenuItemID, Quantity: 7})
	assert.Equal(t, 7, state.Items[0].Quantity)
}

func TestUpdateInstructions(t *testing.T) {
	info := restaurantInfo("Spice Villa", "30")
	item := snapshot("Paneer Tikka", "180")

	state := Empty()
	state, _ = Reduce(state, AddItem{Item: item, Restaurant: info})
	state, _ = Reduce(state, UpdateInstructions{MenuItemID: item.MenuItemID, Text: "extra spicy"})
	assert.Equal(t, "extra spicy", state.Items[0].SpecialInstructions)
}

func TestClearCartLeavesPendingUntouched(t *testing.T) {
	infoA := restaurantInfo("Spice Villa", "30")
	infoB := restaurantInfo("Noodle House", "20")

	state := Empty()
	state, _ = Reduce(state, AddItem{Item: snapshot("Paneer Tikka", "180"), Restaurant: infoA})
	state, _ = Reduce(state, AddItem{Item: snapshot("Hakka Noodles", "150"), Restaurant: infoB})
	require.NotNil(t, state.PendingAdd)

	next, _ := Reduce(state, ClearCart{})
	assert.Empty(t, next.Items)
	assert.Nil(t, next.RestaurantID)
	assert.Nil(t, next.RestaurantInfo)
	assert.NotNil(t, next.PendingAdd, "clear does not resolve a staged add")
	assert.True(t, next.ShowRestaurantChange)
	assert.True(t, next.IsEmpty())
}

func TestDerivedTotals(t *testing.T) {
	info := restaurantInfo("Spice Villa", "30")
	tikka := snapshot("Paneer Tikka", "180")
	samosa := snapshot("Samosa", "40")

	state := Empty()
	state, _ = Reduce(state, AddItem{Item: tikka, Restaurant: info})
	state, _ = Reduce(state, UpdateQuantity{MenuItemID: tikka.MenuItemID, Quantity: 2})
	state, _ = Reduce(state, AddItem{Item: samosa, Restaurant: info})

	assert.Equal(t, 3, state.ItemCount())
	assert.True(t, state.Subtotal().Equal(decimal.RequireFromString("400")))
	assert.True(t, state.DeliveryFee().Equal(decimal.RequireFromString("30")))
	assert.True(t, state.Tax().Equal(decimal.RequireFromString("20")))
	assert.True(t, state.Total().Equal(decimal.RequireFromString("450")))
}

func TestDerivedTotalsFractionalTax(t *testing.T) {
	info := restaurantInfo("Spice Villa", "30")
	roll := snapshot("Veg Roll", "100")
	lassi := snapshot("Lassi", "50")

	state := Empty()
	state, _ = Reduce(state, AddItem{Item: roll, Restaurant: info})
	state, _ = Reduce(state, UpdateQuantity{MenuItemID: roll.MenuItemID, Quantity: 2})
	state, _ = Reduce(state, AddItem{Item: lassi, Restaurant: info})

	// 5% of 250 lands on a half rupee; the paise must survive into the total.
	assert.True(t, state.Subtotal().Equal(decimal.RequireFromString("250")))
	assert.True(t, state.Tax().Equal(decimal.RequireFromString("12.50")),
		"tax %s", state.Tax())
	assert.True(t, state.Total().Equal(decimal.RequireFromString("292.50")),
		"total %s", state.Total())
}

func TestDerivedTotalsEmptyCart(t *testing.T) {
	state := Empty()
	assert.True(t, state.IsEmpty())
	assert.Equal(t, 0, state.ItemCount())
	assert.True(t, state.Subtotal().IsZero())
	assert.True(t, state.DeliveryFee().IsZero(), "fee is zero while unbound")
	assert.True(t, state.Total().IsZero())
}

func TestReduceNeverMutatesInput(t *testing.T) {
	info := restaurantInfo("Spice Villa", "30")
	item := snapshot("Paneer Tikka", "180")

	state := Empty()
	state, _ = Reduce(state, AddItem{Item: item, Restaurant: info})
	before := state.Items[0].Quantity

	_, _ = Reduce(state, UpdateQuantity{MenuItemID: item.MenuItemID, Quantity: 9})
	assert.Equal(t, before, state.Items[0].Quantity)
}
