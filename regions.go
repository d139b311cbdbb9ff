package mandelgrid

// Classic regions / landmarks in the Mandelbrot set.
var (
	// ClassicView – the full set with its surrounding disc
	ClassicView = Region{
		Xmin: -2.0,
		Xmax: 0.5,
		Ymin: -1.25,
		Ymax: 1.25,
	}

	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		Xmin: -1.85,
		Xmax: -1.75,
		Ymin: -0.10,
		Ymax: -0.02,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}
)

// NamedRegions maps CLI-friendly names to the landmark regions above.
var NamedRegions = map[string]Region{
	"classic":  ClassicView,
	"seahorse": SeahorseValley,
	"elephant": ElephantValley,
	"minibrot": SpiralMinibrot,
	"triple":   TripleSpiral,
	"dragon":   ValleyOfTheDragon,
}
