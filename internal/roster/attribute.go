package roster

import "fmt"

// Attribute is a static player attribute stored as a nibble in the cartridge.
type Attribute uint8

// Player attributes.
const (
	RushingSpeed       Attribute = iota // RS
	RushingPower                        // RP
	MaxSpeed                            // MS
	HittingPower                        // HP
	PassingSpeed                        // PS
	PassControl                         // PC
	PassAccuracy                        // AP
	AvoidPassBlock                      // APB
	BallControl                         // BC
	Receiving                           // REC
	Interceptions                       // INT
	Quickness                           // QK
	KickingAbility                      // KA
	AvoidKickBlock                      // AKKB
	PuntingAbility                      // PKA
	AvoidPuntBlock                      // APKB
	Race
	Face
)

// AttributeCount is the number of distinct attributes.
const AttributeCount = int(Face) + 1

var attributeNames = [AttributeCount]string{
	"RS", "RP", "MS", "HP", "PS", "PC", "AP", "APB", "BC", "REC",
	"INT", "QK", "KA", "AKKB", "PKA", "APKB", "race", "face",
}

func (a Attribute) String() string {
	if int(a) >= AttributeCount {
		return fmt.Sprintf("Attribute(%d)", a)
	}
	return attributeNames[a]
}

// ParseAttribute returns the attribute for a short name like "MS".
func ParseAttribute(name string) (Attribute, error) {
	for i, s := range attributeNames {
		if s == name {
			return Attribute(i), nil
		}
	}
	return 0, fmt.Errorf("unknown attribute '%s'", name)
}

var coreAttributes = []Attribute{RushingPower, RushingSpeed, MaxSpeed, HittingPower, Race, Face}

var roleAttributes = [RoleCount][]Attribute{
	QB: withCore(PassingSpeed, PassControl, PassAccuracy, AvoidPassBlock),
	RB: withCore(BallControl, Receiving),
	WR: withCore(BallControl, Receiving),
	TE: withCore(BallControl, Receiving),
	OL: withCore(),
	DL: withCore(Interceptions, Quickness),
	LB: withCore(Interceptions, Quickness),
	DB: withCore(Interceptions, Quickness),
	K:  withCore(KickingAbility, AvoidKickBlock),
	P:  withCore(PuntingAbility, AvoidPuntBlock),
}

func withCore(extra ...Attribute) []Attribute {
	attributes := make([]Attribute, 0, len(coreAttributes)+len(extra))
	attributes = append(attributes, coreAttributes...)
	return append(attributes, extra...)
}

// AttributesFor returns the ordered attribute list stored in the cartridge
// for players of the given role. The list always starts with the 6 core
// attributes and always has an even length, 2 attributes are packed per byte.
func AttributesFor(role Role) []Attribute {
	attributes := roleAttributes[role]
	result := make([]Attribute, len(attributes))
	copy(result, attributes)
	return result
}

// AttributeBytes returns the number of bytes the attributes of a player of
// the given role occupy in the cartridge.
func AttributeBytes(role Role) int {
	return len(roleAttributes[role]) / 2
}
