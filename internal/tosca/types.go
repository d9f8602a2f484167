package tosca

// Normative and orchestrator node types.
const (
	TypeRoot    = "tosca.nodes.Root"
	TypeCompute = "tosca.nodes.Compute"

	TypeVNF       = "tosca.nodes.nfv.VNF"
	TypeVNFRiftIO = "tosca.nodes.nfv.riftio.VNF1"

	TypeVDU       = "tosca.nodes.nfv.VDU"
	TypeVDURiftIO = "tosca.nodes.nfv.riftio.VDU1"

	TypeCP       = "tosca.nodes.nfv.CP"
	TypeCPRiftIO = "tosca.nodes.nfv.riftio.CP1"

	TypeVL      = "tosca.nodes.nfv.VL"
	TypeVLELAN  = "tosca.nodes.nfv.VL.ELAN"
	TypeVLELINE = "tosca.nodes.nfv.VL.ELINE"
	TypeVLETREE = "tosca.nodes.nfv.VL.ETREE"

	TypeELANRiftIO  = "tosca.nodes.nfv.riftio.ELAN"
	TypeELINERiftIO = "tosca.nodes.nfv.riftio.ELINE"
	TypeETREERiftIO = "tosca.nodes.nfv.riftio.ETREE"
)

// Group and policy types.
const (
	GroupRoot          = "tosca.groups.Root"
	GroupVNFComponents = "tosca.groups.nfv.riftio.VNFComponents"

	PolicyRoot                   = "tosca.policies.Root"
	PolicyScaling                = "tosca.policies.nfv.riftio.scaling"
	PolicyServicePrimitives      = "tosca.policies.nfv.riftio.ns_service_primitives"
	PolicyInitialConfigPrimitive = "tosca.policies.nfv.riftio.initial_config_primitive"
)

// ArtifactQCOW2 is the artifact type of VDU images.
const ArtifactQCOW2 = "tosca.artifacts.Deployment.Image.VM.QCOW2"

// DefaultDefinitionsVersion is written into generated templates.
const DefaultDefinitionsVersion = "tosca_simple_profile_for_nfv_1_0_0"

// Requirement names used by connection points.
const (
	ReqVirtualBinding = "virtualBinding"
	ReqVirtualLink    = "virtualLink"
)

// Network kinds carried by virtual links.
const (
	KindELAN  = "ELAN"
	KindELINE = "ELINE"
	KindETREE = "ETREE"
)

// normativeParents is the built-in inheritance table.
var normativeParents = map[string]string{
	TypeCompute: TypeRoot,

	TypeVNF:       TypeRoot,
	TypeVNFRiftIO: TypeVNF,

	TypeVDU:       TypeCompute,
	TypeVDURiftIO: TypeVDU,

	TypeCP:       TypeRoot,
	TypeCPRiftIO: TypeCP,

	TypeVL:      TypeRoot,
	TypeVLELAN:  TypeVL,
	TypeVLELINE: TypeVL,
	TypeVLETREE: TypeVL,

	TypeELANRiftIO:  TypeVLELAN,
	TypeELINERiftIO: TypeVLELINE,
	TypeETREERiftIO: TypeVLETREE,

	GroupVNFComponents: GroupRoot,

	PolicyScaling:                PolicyRoot,
	PolicyServicePrimitives:      PolicyRoot,
	PolicyInitialConfigPrimitive: PolicyRoot,
}

// NetworkKind returns the kind (ELAN, ELINE, ETREE) a VL type stands for, if any.
func NetworkKind(typeName string) (string, bool) {
	switch typeName {
	case TypeVLELAN, TypeELANRiftIO:
		return KindELAN, true
	case TypeVLELINE, TypeELINERiftIO:
		return KindELINE, true
	case TypeVLETREE, TypeETREERiftIO:
		return KindETREE, true
	default:
		return "", false
	}
}
