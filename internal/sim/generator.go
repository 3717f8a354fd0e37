package sim

import (
	"fmt"

	"github.com/litescript/ls-craftsim/internal/craft"
)

// IntRange is an inclusive integer range for one random draw.
type IntRange struct {
	Min int
	Max int
}

// Ranges holds the draw range for every randomized attribute.
type Ranges struct {
	Altitude        IntRange // miles
	Payload         IntRange // kg
	Power           IntRange // watts
	TargetAltitude  IntRange // miles
	Torque          IntRange
	AngularVelocity IntRange
}

// DefaultRanges returns ranges that straddle every nominal band, so a handful
// of crafts exercises both the success and failure paths.
func DefaultRanges() Ranges {
	return Ranges{
		Altitude:        IntRange{Min: 50, Max: 1500},
		Payload:         IntRange{Min: 500, Max: 12000},
		Power:           IntRange{Min: 0, Max: 1200},
		TargetAltitude:  IntRange{Min: 50, Max: 1500},
		Torque:          IntRange{Min: 1, Max: 10},
		AngularVelocity: IntRange{Min: 1, Max: 5},
	}
}

// ModelNames is the pool craft models are drawn from, in order.
var ModelNames = []string{
	"Aquila", "Borealis", "Cygnus", "Draco",
	"Eridanus", "Fornax", "Hydra", "Lyra",
}

// ModelName returns the model for the i-th generated craft. Names repeat with
// a numeric suffix once the pool is exhausted.
func ModelName(i int) string {
	base := ModelNames[i%len(ModelNames)]
	if round := i / len(ModelNames); round > 0 {
		return fmt.Sprintf("%s-%d", base, round+1)
	}
	return base
}

// Mission pairs a craft with the manoeuvre it will be asked to perform.
type Mission struct {
	Craft   *craft.Craft
	Command craft.AttitudeCommand
}

// Generate builds n missions. Draw order per craft is altitude, payload,
// comms, power, target altitude, torque, angular velocity.
// A negative n yields no missions.
func Generate(src Source, n int, r Ranges) []Mission {
	n = max(n, 0)
	missions := make([]Mission, 0, n)
	for i := 0; i < n; i++ {
		altitude := src.IntBetween(r.Altitude.Min, r.Altitude.Max)
		payload := src.IntBetween(r.Payload.Min, r.Payload.Max)

		comms := craft.CommsWorking
		if src.IntBetween(0, 1) == 1 {
			comms = craft.CommsNotWorking
		}

		power := src.IntBetween(r.Power.Min, r.Power.Max)

		cmd := craft.AttitudeCommand{
			Target:          float64(src.IntBetween(r.TargetAltitude.Min, r.TargetAltitude.Max)),
			Torque:          float64(src.IntBetween(r.Torque.Min, r.Torque.Max)),
			AngularVelocity: float64(src.IntBetween(r.AngularVelocity.Min, r.AngularVelocity.Max)),
		}

		missions = append(missions, Mission{
			Craft:   craft.New(ModelName(i), float64(altitude), float64(payload), comms, float64(power)),
			Command: cmd,
		})
	}
	return missions
}
