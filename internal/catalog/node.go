package catalog

// Kind is the level of a node in the catalog hierarchy.
type Kind int

const (
	KindCategory Kind = iota + 1
	KindBundle
	KindPricedUnit
)

func (k Kind) String() string {
	switch k {
	case KindCategory:
		return "category"
	case KindBundle:
		return "bundle"
	case KindPricedUnit:
		return "unit"
	default:
		return "unknown"
	}
}

// Subkind distinguishes the two flavours of bundles and priced units.
// Categories carry SubkindNone.
type Subkind int

const (
	SubkindNone Subkind = iota
	SubkindPackage
	SubkindRetainer
	SubkindTier
	SubkindModule
)

func (s Subkind) String() string {
	switch s {
	case SubkindPackage:
		return "package"
	case SubkindRetainer:
		return "retainer"
	case SubkindTier:
		return "tier"
	case SubkindModule:
		return "module"
	default:
		return ""
	}
}

// Money is a single amount in a currency. Amounts are kept as written in the
// catalog so rendering never reformats them.
type Money struct {
	Amount   string
	Currency string
}

type Recurring struct {
	Money
	Frequency string
}

type Range struct {
	Min      string
	Max      string
	Currency string
	Basis    string
}

// HasBounds reports whether both ends of the range are present.
func (r Range) HasBounds() bool { return r.Min != "" && r.Max != "" }

type Quote struct {
	Basis string
}

// Pricing holds every price shape declared on a node. Source catalogs
// normally carry one, but nothing prevents several.
type Pricing struct {
	Fixed       *Money
	Recurring   *Recurring
	PerSession  *Money
	Ranged      *Range
	CustomQuote *Quote
}

// Empty reports whether no shape is present.
func (p Pricing) Empty() bool {
	return p.Fixed == nil && p.Recurring == nil && p.PerSession == nil && p.Ranged == nil && p.CustomQuote == nil
}

type Discount struct {
	Condition string
	Amount    string
}

// Node is one entry of the catalog tree. Nodes are built once by Parse and
// must be treated as read-only afterwards.
type Node struct {
	Kind    Kind
	Subkind Subkind

	// ID is the hierarchical dotted identifier ("1", "1.2", "1.2.3").
	ID string
	// Key is the optional declared identifier from a nested <id> element,
	// e.g. "category-design".
	Key string

	Name        string
	Description string

	Pricing          Pricing
	Deliverables     []string
	IncludedServices []string
	Discounts        []Discount

	Children []*Node
}

// IsContainer reports whether the node groups other nodes.
func (n *Node) IsContainer() bool {
	return n.Kind == KindCategory || n.Kind == KindBundle
}

// KeyPrefix is the prefix used by declared composite identifiers for this
// node's kind ("category", "package", "retainer"). Priced units have none.
func (n *Node) KeyPrefix() string {
	switch {
	case n.Kind == KindCategory:
		return "category"
	case n.Kind == KindBundle:
		return n.Subkind.String()
	default:
		return ""
	}
}
