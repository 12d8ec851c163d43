package main

func main() {
	SetupTransformCmd()
	SetupValidateCmd()
	SetupVersionCmd()
	Execute()
}
