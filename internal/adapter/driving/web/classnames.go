package web

import (
	"slices"
	"strings"

	"github.com/a-h/templ"
)

// Classes composes CSS class lists into a single attribute value.
// Arguments may be strings, templ.KV toggles, string slices,
// map[string]bool sets or nested templ.CSSClasses. Duplicate names
// collapse to their first position and a later templ.KV decides whether
// a toggled class stays in. Conflicting Tailwind utilities are then
// resolved so the last occurrence wins: Classes("p-2 text-sm", "p-4")
// yields "text-sm p-4". Unrecognized class names pass through untouched.
func Classes(args ...any) string {
	return mergeUtilityConflicts(templ.Classes(args...).String())
}

// mergeUtilityConflicts walks the class list from the end and drops any
// earlier class whose utility group, under the same variant modifiers,
// is restated or overridden later. This mirrors how Tailwind resolves
// repeated declarations for the same property.
func mergeUtilityConflicts(classList string) string {
	fields := strings.Fields(classList)
	if len(fields) < 2 {
		return classList
	}

	type groupKey struct {
		modifiers string
		group     string
	}

	kept := make([]string, 0, len(fields))
	seen := make(map[groupKey]struct{}, len(fields))

	for i := len(fields) - 1; i >= 0; i-- {
		class := fields[i]
		modifiers, base := splitVariantModifiers(class)

		group := utilityGroup(base)
		if group == "" {
			// Not a known utility: conflicts only with its exact text.
			group = "literal:" + base
		}

		key := groupKey{modifiers: modifiers, group: group}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		for _, overridden := range overriddenGroups[group] {
			seen[groupKey{modifiers: modifiers, group: overridden}] = struct{}{}
		}
		kept = append(kept, class)
	}

	slices.Reverse(kept)
	return strings.Join(kept, " ")
}

// splitVariantModifiers separates "dark:hover:p-2" into a canonical
// modifier key and the base utility. Modifiers are sorted so that
// hover:dark: and dark:hover: target the same declaration. Colons
// inside brackets, as in arbitrary variants, do not split. A leading
// "!" on the base is folded into the modifier key since important and
// non-important declarations do not override each other.
func splitVariantModifiers(class string) (string, string) {
	var modifiers []string
	depth := 0
	last := 0
	for i := 0; i < len(class); i++ {
		switch class[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ':':
			if depth == 0 {
				modifiers = append(modifiers, class[last:i])
				last = i + 1
			}
		}
	}

	base := class[last:]
	important := ""
	if strings.HasPrefix(base, "!") {
		base = base[1:]
		important = "!"
	}

	if len(modifiers) == 0 {
		return important, base
	}
	slices.Sort(modifiers)
	return important + strings.Join(modifiers, ":"), base
}

// utilityGroup maps a bare utility class to its conflict group, or ""
// when the class is not a recognized Tailwind utility. Negative values
// share a group with their positive counterparts.
func utilityGroup(class string) string {
	class = strings.TrimPrefix(class, "-")

	if group, ok := exactGroups[class]; ok {
		return group
	}
	if group := ambiguousPrefixGroup(class); group != "" {
		return group
	}
	for _, entry := range prefixGroups {
		if strings.HasPrefix(class, entry.prefix) {
			return entry.group
		}
	}
	return ""
}

// ambiguousPrefixGroup resolves the prefixes whose group depends on the
// suffix: text-lg is a font size while text-rose-500 is a color, and
// border-2 is a width while border-rose-200 is a color.
func ambiguousPrefixGroup(class string) string {
	if suffix, ok := strings.CutPrefix(class, "text-"); ok {
		if isFontSize(suffix) {
			return "font-size"
		}
		return "text-color"
	}
	if suffix, ok := strings.CutPrefix(class, "font-"); ok {
		if fontWeights[suffix] {
			return "font-weight"
		}
		return "font-family"
	}
	if suffix, ok := strings.CutPrefix(class, "shadow-"); ok {
		if shadowSizes[suffix] {
			return "shadow"
		}
		return "shadow-color"
	}
	if suffix, ok := strings.CutPrefix(class, "bg-"); ok {
		switch {
		case strings.HasPrefix(suffix, "gradient-"):
			return "bg-image"
		case bgSizes[suffix]:
			return "bg-size"
		case bgPositions[suffix]:
			return "bg-position"
		default:
			return "bg-color"
		}
	}
	if suffix, ok := strings.CutPrefix(class, "ring-"); ok {
		if strings.HasPrefix(suffix, "offset-") {
			return "ring-offset"
		}
		if isWidthValue(suffix) {
			return "ring-width"
		}
		return "ring-color"
	}
	if suffix, ok := strings.CutPrefix(class, "border-"); ok {
		return borderGroup(suffix)
	}
	if suffix, ok := strings.CutPrefix(class, "rounded-"); ok {
		return roundedGroup(suffix)
	}
	if suffix, ok := strings.CutPrefix(class, "decoration-"); ok {
		switch suffix {
		case "solid", "dashed", "dotted", "double", "wavy":
			return "text-decoration-style"
		}
		if suffix == "auto" || suffix == "from-font" || isWidthValue(suffix) {
			return "text-decoration-thickness"
		}
		return "text-decoration-color"
	}
	return ""
}

// roundedGroup keys radius classes per corner and side. The side token
// must stand alone or be followed by a value: rounded-l-lg is the left
// radius while rounded-lg is the shorthand for all corners.
func roundedGroup(suffix string) string {
	for _, side := range [...]string{"tl", "tr", "br", "bl", "t", "r", "b", "l"} {
		if suffix == side || strings.HasPrefix(suffix, side+"-") {
			return "rounded-" + side
		}
	}
	return "rounded"
}

// borderGroup distinguishes border widths, styles and colors, per side.
// border-t-2 is a top width while border-t-rose-200 is a color.
func borderGroup(suffix string) string {
	for _, side := range [...]struct{ prefix, group string }{
		{"x-", "border-width-x"}, {"y-", "border-width-y"},
		{"t-", "border-width-t"}, {"r-", "border-width-r"},
		{"b-", "border-width-b"}, {"l-", "border-width-l"},
	} {
		if rest, ok := strings.CutPrefix(suffix, side.prefix); ok {
			if isWidthValue(rest) {
				return side.group
			}
			return "border-color"
		}
	}

	switch suffix {
	case "x":
		return "border-width-x"
	case "y":
		return "border-width-y"
	case "t":
		return "border-width-t"
	case "r":
		return "border-width-r"
	case "b":
		return "border-width-b"
	case "l":
		return "border-width-l"
	case "solid", "dashed", "dotted", "double", "none":
		return "border-style"
	}

	if isWidthValue(suffix) {
		return "border-width"
	}
	return "border-color"
}

func isFontSize(suffix string) bool {
	// text-sm/6 sets the size with a line-height shorthand.
	if idx := strings.IndexByte(suffix, '/'); idx >= 0 {
		suffix = suffix[:idx]
	}
	if fontSizes[suffix] {
		return true
	}
	if value, ok := cutArbitrary(suffix); ok {
		return looksLikeLength(value)
	}
	return false
}

func isWidthValue(value string) bool {
	switch value {
	case "0", "1", "2", "4", "8":
		return true
	}
	if inner, ok := cutArbitrary(value); ok {
		return looksLikeLength(inner)
	}
	return false
}

// cutArbitrary unwraps a bracketed arbitrary value: "[14px]" -> "14px".
func cutArbitrary(s string) (string, bool) {
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return s[1 : len(s)-1], true
	}
	return "", false
}

// looksLikeLength reports whether an arbitrary value reads as a length
// rather than a color: "14px" and ".5rem" are lengths, "#336699" and
// "rgb(...)" are not.
func looksLikeLength(value string) bool {
	if value == "" {
		return false
	}
	if strings.HasPrefix(value, "length:") {
		return true
	}
	c := value[0]
	return (c >= '0' && c <= '9') || c == '.'
}

var fontSizes = map[string]bool{
	"xs": true, "sm": true, "base": true, "lg": true, "xl": true,
	"2xl": true, "3xl": true, "4xl": true, "5xl": true, "6xl": true,
	"7xl": true, "8xl": true, "9xl": true,
}

var fontWeights = map[string]bool{
	"thin": true, "extralight": true, "light": true, "normal": true,
	"medium": true, "semibold": true, "bold": true, "extrabold": true,
	"black": true,
}

var shadowSizes = map[string]bool{
	"sm": true, "md": true, "lg": true, "xl": true, "2xl": true,
	"inner": true, "none": true,
}

var bgSizes = map[string]bool{
	"auto": true, "cover": true, "contain": true,
}

var bgPositions = map[string]bool{
	"top": true, "bottom": true, "center": true, "left": true, "right": true,
	"left-top": true, "left-bottom": true, "right-top": true, "right-bottom": true,
}

// exactGroups maps whole class names to their conflict group.
var exactGroups = map[string]string{
	"block": "display", "inline-block": "display", "inline": "display",
	"flex": "display", "inline-flex": "display", "grid": "display",
	"inline-grid": "display", "table": "display", "flow-root": "display",
	"contents": "display", "hidden": "display",

	"static": "position", "fixed": "position", "absolute": "position",
	"relative": "position", "sticky": "position",

	"truncate": "text-overflow", "text-ellipsis": "text-overflow",
	"text-clip": "text-overflow",

	"text-wrap": "text-wrap", "text-nowrap": "text-wrap",
	"text-balance": "text-wrap", "text-pretty": "text-wrap",

	"text-left": "text-align", "text-center": "text-align",
	"text-right": "text-align", "text-justify": "text-align",
	"text-start": "text-align", "text-end": "text-align",

	"flex-row": "flex-direction", "flex-row-reverse": "flex-direction",
	"flex-col": "flex-direction", "flex-col-reverse": "flex-direction",

	"flex-wrap": "flex-wrap", "flex-wrap-reverse": "flex-wrap",
	"flex-nowrap": "flex-wrap",

	"flex-1": "flex", "flex-auto": "flex", "flex-initial": "flex",
	"flex-none": "flex",

	"list-inside": "list-style-position", "list-outside": "list-style-position",
	"list-disc": "list-style-type", "list-decimal": "list-style-type",
	"list-none": "list-style-type",

	"grow": "flex-grow", "grow-0": "flex-grow",
	"shrink": "flex-shrink", "shrink-0": "flex-shrink",

	"italic": "font-style", "not-italic": "font-style",

	"underline": "text-decoration", "overline": "text-decoration",
	"line-through": "text-decoration", "no-underline": "text-decoration",

	"break-normal": "word-break", "break-words": "word-break",
	"break-all": "word-break",

	"border":   "border-width",
	"rounded":  "rounded",
	"shadow":   "shadow",
	"ring":     "ring-width",
	"bg-none":  "bg-image",
	"sr-only":  "sr",
	"not-sr-only": "sr",

	"transition": "transition", "transition-none": "transition",
}

// prefixGroups maps utility prefixes to conflict groups. Longer
// prefixes are listed before the shorter ones they contain.
var prefixGroups = []struct {
	prefix string
	group  string
}{
	{"px-", "padding-x"}, {"py-", "padding-y"},
	{"pt-", "padding-t"}, {"pr-", "padding-r"},
	{"pb-", "padding-b"}, {"pl-", "padding-l"},
	{"p-", "padding"},

	{"mx-", "margin-x"}, {"my-", "margin-y"},
	{"mt-", "margin-t"}, {"mr-", "margin-r"},
	{"mb-", "margin-b"}, {"ml-", "margin-l"},
	{"m-", "margin"},

	{"min-w-", "min-width"}, {"max-w-", "max-width"},
	{"min-h-", "min-height"}, {"max-h-", "max-height"},
	{"w-", "width"}, {"h-", "height"}, {"size-", "size"},

	{"inset-x-", "inset-x"}, {"inset-y-", "inset-y"}, {"inset-", "inset"},
	{"top-", "top"}, {"right-", "right"},
	{"bottom-", "bottom"}, {"left-", "left"},
	{"z-", "z-index"},

	{"gap-x-", "gap-x"}, {"gap-y-", "gap-y"}, {"gap-", "gap"},
	{"space-x-", "space-x"}, {"space-y-", "space-y"},

	{"items-", "align-items"},
	{"justify-items-", "justify-items"}, {"justify-self-", "justify-self"},
	{"justify-", "justify-content"},
	{"self-", "align-self"}, {"content-", "align-content"},
	{"place-items-", "place-items"}, {"place-self-", "place-self"},
	{"place-", "place-content"},

	{"basis-", "flex-basis"}, {"order-", "order"},
	{"grid-cols-", "grid-cols"}, {"grid-rows-", "grid-rows"},
	{"col-", "grid-col"}, {"row-", "grid-row"},

	{"leading-", "line-height"}, {"tracking-", "letter-spacing"},
	{"whitespace-", "whitespace"}, {"align-", "vertical-align"},
	{"list-", "list-style-type"},

	{"overflow-x-", "overflow-x"}, {"overflow-y-", "overflow-y"},
	{"overflow-", "overflow"},

	{"opacity-", "opacity"}, {"cursor-", "cursor"},
	{"select-", "user-select"}, {"pointer-events-", "pointer-events"},

	{"from-", "gradient-from"}, {"via-", "gradient-via"},
	{"to-", "gradient-to"},

	{"divide-x", "divide-x"}, {"divide-y", "divide-y"},
	{"outline-", "outline"},
	{"fill-", "fill"}, {"stroke-", "stroke"},

	{"transition-", "transition"}, {"duration-", "duration"},
	{"ease-", "ease"}, {"delay-", "delay"},
	{"animate-", "animation"},
}

// overriddenGroups lists the groups a shorthand utility resets in
// addition to its own: a later "p-4" drops an earlier "px-2", while a
// later "px-2" leaves an earlier "p-4" in place.
var overriddenGroups = map[string][]string{
	"padding":   {"padding-x", "padding-y", "padding-t", "padding-r", "padding-b", "padding-l"},
	"padding-x": {"padding-r", "padding-l"},
	"padding-y": {"padding-t", "padding-b"},

	"margin":   {"margin-x", "margin-y", "margin-t", "margin-r", "margin-b", "margin-l"},
	"margin-x": {"margin-r", "margin-l"},
	"margin-y": {"margin-t", "margin-b"},

	"inset":   {"inset-x", "inset-y", "top", "right", "bottom", "left"},
	"inset-x": {"right", "left"},
	"inset-y": {"top", "bottom"},

	"size": {"width", "height"},
	"gap":  {"gap-x", "gap-y"},

	"overflow": {"overflow-x", "overflow-y"},

	"rounded":   {"rounded-t", "rounded-r", "rounded-b", "rounded-l", "rounded-tl", "rounded-tr", "rounded-br", "rounded-bl"},
	"rounded-t": {"rounded-tl", "rounded-tr"},
	"rounded-r": {"rounded-tr", "rounded-br"},
	"rounded-b": {"rounded-br", "rounded-bl"},
	"rounded-l": {"rounded-tl", "rounded-bl"},

	"border-width":   {"border-width-x", "border-width-y", "border-width-t", "border-width-r", "border-width-b", "border-width-l"},
	"border-width-x": {"border-width-r", "border-width-l"},
	"border-width-y": {"border-width-t", "border-width-b"},
}
