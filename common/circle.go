package common

import "github.com/jakecoffman/cp"

type Circle struct {
	Center cp.Vector
	Radius float64
}

func (c Circle) BB() cp.BB {
	return cp.NewBBForCircle(c.Center, c.Radius)
}

func (c Circle) Contains(p cp.Vector) bool {
	return c.Center.DistanceSq(p) <= c.Radius*c.Radius
}

func (c Circle) Intersects(other Circle) bool {
	r := c.Radius + other.Radius
	return c.Center.DistanceSq(other.Center) <= r*r
}
