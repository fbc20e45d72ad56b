package joblist

// Job is one BVH to retarget onto one base motion.
type Job struct {
	Name      string
	Bvh       string // input BVH path
	Motion    string // base mot the BVH is applied onto
	Output    string // retargeted mot path relative to the output directory, defaults to <Name>.mot
	Directive string // optional axis directive overriding the run default
}
