package web

import (
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
)

func TestClasses_Empty(t *testing.T) {
	assert.Equal(t, "", Classes())
}

func TestClasses_JoinsAndDedupes(t *testing.T) {
	assert.Equal(t, "site-header brand", Classes("site-header", "site-header", "brand"))
}

func TestClasses_KVToggle(t *testing.T) {
	assert.Equal(t, "nav-link nav-link-active",
		Classes("nav-link", templ.KV("nav-link-active", true)))
	assert.Equal(t, "nav-link",
		Classes("nav-link", templ.KV("nav-link-active", false)))
}

func TestClasses_LaterKVDisablesEarlierClass(t *testing.T) {
	assert.Equal(t, "card", Classes("card", "hidden", templ.KV("hidden", false)))
}

func TestClasses_MapArgument(t *testing.T) {
	assert.Equal(t, "card", Classes(map[string]bool{"card": true, "hidden": false}))
}

func TestClasses_LastConflictWins(t *testing.T) {
	assert.Equal(t, "p-4", Classes("p-2", "p-4"))
	assert.Equal(t, "text-blue-400", Classes("text-red-500", "text-blue-400"))
	assert.Equal(t, "bg-rose-50", Classes("bg-white", "bg-rose-50"))
}

func TestClasses_ConflictAcrossMultiClassStrings(t *testing.T) {
	assert.Equal(t, "text-sm p-4", Classes("p-2 text-sm", "p-4"))
	assert.Equal(t, "items-center block", Classes("flex items-center", "block"))
}

func TestClasses_ShorthandOverridesSides(t *testing.T) {
	assert.Equal(t, "p-1", Classes("px-2", "py-3", "p-1"))
	assert.Equal(t, "m-0", Classes("mt-4 mb-2", "m-0"))
}

func TestClasses_SidesDoNotOverrideShorthand(t *testing.T) {
	assert.Equal(t, "p-1 px-2", Classes("p-1", "px-2"))
}

func TestClasses_DistinctGroupsKept(t *testing.T) {
	assert.Equal(t, "text-sm text-red-500", Classes("text-sm", "text-red-500"))
	assert.Equal(t, "border-2 border-slate-200", Classes("border-2", "border-slate-200"))
	assert.Equal(t, "font-bold font-mono", Classes("font-bold", "font-mono"))
	assert.Equal(t, "shadow-lg shadow-rose-200", Classes("shadow-lg", "shadow-rose-200"))
}

func TestClasses_ModifiersConflictSeparately(t *testing.T) {
	assert.Equal(t, "p-2 hover:p-4", Classes("p-2", "hover:p-4"))
	assert.Equal(t, "hover:p-4", Classes("hover:p-2", "hover:p-4"))
}

func TestClasses_ModifierOrderIsCanonical(t *testing.T) {
	assert.Equal(t, "hover:dark:p-4", Classes("dark:hover:p-2", "hover:dark:p-4"))
}

func TestClasses_ImportantKeptApart(t *testing.T) {
	assert.Equal(t, "!p-2 p-4", Classes("!p-2", "p-4"))
}

func TestClasses_NegativeValuesShareGroup(t *testing.T) {
	assert.Equal(t, "mt-4", Classes("-mt-2", "mt-4"))
}

func TestClasses_ArbitraryValues(t *testing.T) {
	assert.Equal(t, "p-2", Classes("p-[3px]", "p-2"))
	assert.Equal(t, "text-lg", Classes("text-[14px]", "text-lg"))
	assert.Equal(t, "text-[#336699] text-sm", Classes("text-[#336699]", "text-sm"))
}

func TestClasses_FontSizeLineHeightShorthand(t *testing.T) {
	assert.Equal(t, "text-base/7", Classes("text-sm/6", "text-base/7"))
}

func TestClasses_RoundedSidesAndShorthand(t *testing.T) {
	assert.Equal(t, "rounded-lg", Classes("rounded-t-md", "rounded-lg"))
	assert.Equal(t, "rounded-lg rounded-t-md", Classes("rounded-lg", "rounded-t-md"))
	assert.Equal(t, "rounded-xl", Classes("rounded-lg", "rounded-xl"))
}

func TestClasses_UnknownClassesPassThrough(t *testing.T) {
	assert.Equal(t, "site-header wiggle", Classes("site-header", "wiggle"))
}

func TestClasses_Idempotent(t *testing.T) {
	merged := Classes("p-2 text-sm hover:bg-rose-50", "p-4", templ.KV("hidden", false))
	assert.Equal(t, merged, Classes(merged))
}
