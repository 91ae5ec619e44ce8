package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// ReleaseSpin converts the spin a hand imparts about its grip point into the
// spin of the free body about its own center. The angular momentum about the
// grip, using the parallel axis theorem, is kept across the release. Bodies
// without a closed-form inertia keep angVel unchanged.
func ReleaseSpin(body Body, grip, linVel, angVel mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	inertia, ok := body.Inertia()
	if !ok {
		return linVel, angVel
	}
	r := body.Pose.Translation.Sub(grip)
	shift := mgl64.Ident3().Mul(r.Dot(r)).Sub(r.OuterProd3(r)).Mul(body.Mass)
	about := inertia.Add(shift)

	if inertia.Det() == 0 {
		return linVel, angVel
	}
	return linVel, inertia.Inv().Mul3x1(about.Mul3x1(angVel))
}
