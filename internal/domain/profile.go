package domain

import "fmt"

// TransportProfile bundles the constants describing one travel mode: its
// display name, the routing service profile id, the road network category
// it travels on, and an average speed for ETA estimates.
type TransportProfile struct {
	DisplayName string
	OSRMProfile string
	Network     NetworkKind
	AvgSpeedKmh float64
}

// The supported travel modes form a small closed set.
var (
	ProfileCar  = TransportProfile{DisplayName: "Car", OSRMProfile: "driving", Network: NetworkDrive, AvgSpeedKmh: 20}
	ProfileBike = TransportProfile{DisplayName: "Bike", OSRMProfile: "cycling", Network: NetworkBike, AvgSpeedKmh: 15}
	ProfileFoot = TransportProfile{DisplayName: "Foot", OSRMProfile: "walking", Network: NetworkWalk, AvgSpeedKmh: 5}
)

// Profiles lists every supported transport profile.
func Profiles() []TransportProfile {
	return []TransportProfile{ProfileCar, ProfileBike, ProfileFoot}
}

// ProfileByName resolves a profile from its display name.
func ProfileByName(name string) (TransportProfile, error) {
	for _, p := range Profiles() {
		if p.DisplayName == name {
			return p, nil
		}
	}
	return TransportProfile{}, fmt.Errorf("no transport profile named %q", name)
}
