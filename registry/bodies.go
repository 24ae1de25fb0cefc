package registry

// Scene units: the Sun has radius 5, Earth orbits at 16.
var solarSystem = []Body{
	{
		ID: "sun", Name: "Sun", Kind: Star,
		Color: "#fdb813", Radius: 5,
		RealRadiusKm: 696000,
		Description:  "The star at the center of the solar system, a nearly perfect sphere of hot plasma.",
		Facts:        []string{"Spectral type G2V", "Surface temperature about 5,500 °C", "99.86% of the mass of the solar system"},
	},
	{
		ID: "mercury", Name: "Mercury", Kind: Planet, Parent: "sun",
		Color: "#b5b5b5", Radius: 0.4, Distance: 8, Speed: 0.47, Phase: 0.4,
		RealRadiusKm: 2439.7, RealDistanceAU: 0.387,
		Description: "The smallest planet and the closest to the Sun. Without an atmosphere its surface swings between -180 °C and 430 °C.",
		Facts:       []string{"Orbital period 88 days", "No moons"},
	},
	{
		ID: "venus", Name: "Venus", Kind: Planet, Parent: "sun",
		Color: "#e8cda2", Radius: 0.95, Distance: 11, Speed: 0.35, Phase: 1.2,
		RealRadiusKm: 6051.8, RealDistanceAU: 0.723,
		Description: "The hottest planet, wrapped in a dense carbon dioxide atmosphere. It spins backwards relative to most planets.",
		Facts:       []string{"Orbital period 225 days", "Retrograde rotation, 243 day sidereal day"},
	},
	{
		ID: "earth", Name: "Earth", Kind: Planet, Parent: "sun",
		Color: "#2e86ab", Radius: 1, Distance: 16, Speed: 0.3, Phase: 2.1,
		RealRadiusKm: 6371, RealDistanceAU: 1,
		Description: "The only body known to support life. Water covers 71% of its surface.",
		Facts:       []string{"Orbital period 365.25 days", "One natural satellite"},
	},
	{
		ID: "mars", Name: "Mars", Kind: Planet, Parent: "sun",
		Color: "#c1440e", Radius: 0.53, Distance: 20, Speed: 0.24, Phase: 0.5,
		RealRadiusKm: 3389.5, RealDistanceAU: 1.524,
		Description: "The red planet, home of Olympus Mons, the tallest volcano in the solar system.",
		Facts:       []string{"Orbital period 687 days", "Two small moons"},
	},
	{
		ID: "jupiter", Name: "Jupiter", Kind: Planet, Parent: "sun",
		Color: "#c88b3a", Radius: 2.8, Distance: 30, Speed: 0.13, Phase: 3.1,
		RealRadiusKm: 69911, RealDistanceAU: 5.204,
		Description: "The largest planet. The Great Red Spot is a storm older than 350 years.",
		Facts:       []string{"Orbital period 11.9 years", "95 known moons"},
	},
	{
		ID: "saturn", Name: "Saturn", Kind: Planet, Parent: "sun",
		Color: "#e4d191", Radius: 2.4, Distance: 40, Speed: 0.097, Phase: 4.2,
		RealRadiusKm: 58232, RealDistanceAU: 9.582,
		Rings:       &Rings{Inner: 3, Outer: 5.2, Color: "#c9b68a"},
		Description: "Known for its ring system of ice and rock. It is less dense than water.",
		Facts:       []string{"Orbital period 29.5 years", "146 known moons"},
	},
	{
		ID: "uranus", Name: "Uranus", Kind: Planet, Parent: "sun",
		Color: "#7de8e8", Radius: 1.6, Distance: 50, Speed: 0.068, Phase: 5.3,
		RealRadiusKm: 25362, RealDistanceAU: 19.201,
		Rings:       &Rings{Inner: 2.1, Outer: 2.5, Color: "#8fb3c0"},
		Description: "An ice giant rolling around the Sun on its side, its axis tilted by 98 degrees.",
		Facts:       []string{"Orbital period 84 years", "27 known moons"},
	},
	{
		ID: "neptune", Name: "Neptune", Kind: Planet, Parent: "sun",
		Color: "#3f54ba", Radius: 1.55, Distance: 58, Speed: 0.054, Phase: 0.8,
		RealRadiusKm: 24622, RealDistanceAU: 30.047,
		Description: "The outermost planet, with the fastest winds in the solar system.",
		Facts:       []string{"Orbital period 165 years", "16 known moons"},
	},
	{
		ID: "pluto", Name: "Pluto", Kind: DwarfPlanet, Parent: "sun",
		Color: "#d8c3a5", Radius: 0.3, Distance: 66, Speed: 0.047, Phase: 1.7,
		RealRadiusKm: 1188.3, RealDistanceAU: 39.482,
		Description: "A dwarf planet in the Kuiper belt on an inclined, eccentric orbit.",
		Facts:       []string{"Orbital period 248 years", "Five known moons"},
	},

	{
		ID: "moon", Name: "Moon", Kind: Moon, Parent: "earth",
		Color: "#cfcfcf", Radius: 0.27, Distance: 2, Speed: 1.0,
		RealRadiusKm: 1737.4, RealDistanceAU: 0.00257,
		Description: "Earth's only natural satellite, tidally locked to the planet.",
	},
	{
		ID: "phobos", Name: "Phobos", Kind: Moon, Parent: "mars",
		Color: "#8c7b6b", Radius: 0.1, Distance: 1, Speed: 2.0,
		RealRadiusKm: 11.3, RealDistanceAU: 0.0000627,
		Description: "The larger and inner moon of Mars, slowly spiralling inwards.",
	},
	{
		ID: "deimos", Name: "Deimos", Kind: Moon, Parent: "mars",
		Color: "#a39585", Radius: 0.08, Distance: 1.5, Speed: 1.4, Phase: 2,
		RealRadiusKm: 6.2, RealDistanceAU: 0.000157,
		Description: "The small outer moon of Mars.",
	},
	{
		ID: "io", Name: "Io", Kind: Moon, Parent: "jupiter",
		Color: "#e6d35a", Radius: 0.29, Distance: 4, Speed: 1.2,
		RealRadiusKm: 1821.6, RealDistanceAU: 0.00282,
		Description: "The most volcanically active body in the solar system.",
	},
	{
		ID: "europa", Name: "Europa", Kind: Moon, Parent: "jupiter",
		Color: "#c9b79c", Radius: 0.25, Distance: 5, Speed: 0.9, Phase: 1.5,
		RealRadiusKm: 1560.8, RealDistanceAU: 0.00449,
		Description: "An icy moon hiding a global ocean under its crust.",
	},
	{
		ID: "ganymede", Name: "Ganymede", Kind: Moon, Parent: "jupiter",
		Color: "#a89f91", Radius: 0.41, Distance: 6.5, Speed: 0.7, Phase: 3,
		RealRadiusKm: 2634.1, RealDistanceAU: 0.00716,
		Description: "The largest moon in the solar system, bigger than Mercury.",
	},
	{
		ID: "callisto", Name: "Callisto", Kind: Moon, Parent: "jupiter",
		Color: "#6e6259", Radius: 0.38, Distance: 8, Speed: 0.5, Phase: 4.5,
		RealRadiusKm: 2410.3, RealDistanceAU: 0.0126,
		Description: "A heavily cratered, ancient surface.",
	},
	{
		ID: "titan", Name: "Titan", Kind: Moon, Parent: "saturn",
		Color: "#d9a441", Radius: 0.4, Distance: 6.5, Speed: 0.6,
		RealRadiusKm: 2574.7, RealDistanceAU: 0.00817,
		Description: "Saturn's largest moon, with a thick nitrogen atmosphere and methane lakes.",
	},
	{
		ID: "triton", Name: "Triton", Kind: Moon, Parent: "neptune",
		Color: "#b7c4c8", Radius: 0.21, Distance: 3, Speed: -0.8,
		RealRadiusKm: 1353.4, RealDistanceAU: 0.00237,
		Description: "Neptune's largest moon orbits backwards, likely a captured Kuiper belt object.",
	},
}

var galaxyCluster = []Body{
	{
		ID: "milkyway", Name: "Milky Way", Kind: Galaxy,
		Color: "#6f8cff", CoreColor: "#fff4d6", Radius: 40,
		Shape: Spiral, Arms: 4,
		Description: "Our home galaxy, a barred spiral about 100,000 light years across.",
		Facts:       []string{"100 to 400 billion stars"},
	},
	{
		ID: "andromeda", Name: "Andromeda", Kind: Galaxy,
		Color: "#8fa8ff", CoreColor: "#ffe9c4", Radius: 55, Distance: 300, Speed: 0.01, Phase: 0.6,
		Shape: Spiral, Arms: 2,
		Description: "The nearest large galaxy, on course to merge with the Milky Way.",
		Facts:       []string{"2.5 million light years away", "About one trillion stars"},
	},
	{
		ID: "triangulum", Name: "Triangulum", Kind: Galaxy,
		Color: "#7fb0ff", CoreColor: "#fdf0dc", Radius: 25, Distance: 380, Speed: 0.014, Phase: 1.4,
		Shape: Spiral, Arms: 3,
		Description: "The third largest member of the Local Group.",
	},
	{
		ID: "lmc", Name: "Large Magellanic Cloud", Kind: Galaxy,
		Color: "#a5c8ff", CoreColor: "#ffd9b0", Radius: 12, Distance: 90, Speed: 0.04, Phase: 3.9,
		Shape: Irregular,
		Description: "A satellite galaxy of the Milky Way, rich in star-forming regions.",
	},
	{
		ID: "smc", Name: "Small Magellanic Cloud", Kind: Galaxy,
		Color: "#b0d0ff", CoreColor: "#ffcfa0", Radius: 8, Distance: 120, Speed: 0.035, Phase: 4.4,
		Shape: Irregular,
		Description: "A dwarf irregular galaxy near the Large Magellanic Cloud.",
	},
	{
		ID: "m87", Name: "Messier 87", Kind: Galaxy,
		Color: "#ffd7a1", CoreColor: "#fffaf0", Radius: 45, Distance: 520, Speed: 0.006, Phase: 2.6,
		Shape: Elliptical,
		Description: "A supergiant elliptical galaxy whose central black hole was the first ever imaged.",
	},
	{
		ID: "m32", Name: "Messier 32", Kind: Galaxy,
		Color: "#ffe0b8", CoreColor: "#fff8ea", Radius: 6, Distance: 340, Speed: 0.012, Phase: 0.9,
		Shape: Elliptical,
		Description: "A compact dwarf elliptical satellite of Andromeda.",
	},
}

// Default returns the built-in solar system and galaxy cluster with their
// override tables.
func Default() *Registry {
	bodies := make([]Body, 0, len(solarSystem)+len(galaxyCluster))
	bodies = append(bodies, solarSystem...)
	bodies = append(bodies, galaxyCluster...)

	r, err := New(bodies...)
	if err != nil {
		panic(err)
	}

	for id, s := range map[string]float64{
		"sun":     0.05,
		"mercury": 0.02,
		"venus":   -0.01,
		"earth":   1.0,
		"mars":    0.97,
		"jupiter": 2.4,
		"saturn":  2.2,
		"uranus":  -1.4,
		"neptune": 1.5,
		"pluto":   -0.16,
		"moon":    0.04,
	} {
		r.SetRotationSpeed(id, s)
	}

	r.SetAxialTilt("uranus", Deg(97.77))

	r.SetInclination("mercury", Deg(7))
	r.SetInclination("pluto", Deg(17.16))

	// Rings read best from above at an angle, atmospheres from low down
	// against the limb.
	r.SetView("saturn", View{Distance: 18, Elevation: Deg(35)})
	r.SetView("earth", View{Distance: 4.5, Elevation: Deg(8)})

	return r
}

// SolarSystem selects the bodies of the solar system view.
func SolarSystem(b Body) bool {
	return b.Kind != Galaxy
}

// Galaxies selects the bodies of the galaxy cluster view.
func Galaxies(b Body) bool {
	return b.Kind == Galaxy
}
