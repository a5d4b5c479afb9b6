package wu

import (
	"html"
	"log/slog"
	"strings"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type fixtureUpdate struct {
	internalID string
	updateID   string
	moniker    string
}

// syncUpdatesResponse mimics the service: each update's XML is entity-encoded
// inside its <Xml> element.
func syncUpdatesResponse(updates ...fixtureUpdate) string {
	var infos strings.Builder
	for _, u := range updates {
		inner := `<UpdateIdentity UpdateID="` + u.updateID + `" RevisionNumber="1" />` +
			`<Properties UpdateType="Software" PackageRank="30000"><SecuredFragment /></Properties>` +
			`<Relationships><Prerequisites><AtLeastOne IsCategory="true"><UpdateIdentity UpdateID="d25480ca-36aa-46e6-b76b-39608d49558c" /></AtLeastOne></Prerequisites></Relationships>` +
			`<ApplicabilityRules><Metadata><AppxPackageMetadata><AppxMetadata PackageType="AppxBundle" IsAppxFramework="false" PackageMoniker="` + u.moniker + `" /></AppxPackageMetadata></Metadata></ApplicabilityRules>`

		infos.WriteString(`<UpdateInfo><ID>` + u.internalID + `</ID>`)
		infos.WriteString(`<Deployment><ID>1</ID><Action>Install</Action><IsAssigned>true</IsAssigned></Deployment>`)
		infos.WriteString(`<IsLeaf>true</IsLeaf><Xml>` + html.EscapeString(inner) + `</Xml></UpdateInfo>`)
	}

	return `<?xml version="1.0" encoding="utf-8"?>` +
		`<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope" xmlns:a="http://www.w3.org/2005/08/addressing">` +
		`<s:Header><a:Action s:mustUnderstand="1">http://www.microsoft.com/SoftwareDistribution/Server/ClientWebService/SyncUpdatesResponse</a:Action></s:Header>` +
		`<s:Body><SyncUpdatesResponse xmlns="http://www.microsoft.com/SoftwareDistribution/Server/ClientWebService">` +
		`<SyncUpdatesResult><NewUpdates>` + infos.String() + `</NewUpdates><Truncated>false</Truncated></SyncUpdatesResult>` +
		`</SyncUpdatesResponse></s:Body></s:Envelope>`
}

func getCookieResponse(token string) string {
	return `<?xml version="1.0" encoding="utf-8"?>` +
		`<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope"><s:Body>` +
		`<GetCookieResponse xmlns="http://www.microsoft.com/SoftwareDistribution/Server/ClientWebService">` +
		`<GetCookieResult><Expiration>2045-03-11T02:02:48Z</Expiration><EncryptedData>` + token + `</EncryptedData></GetCookieResult>` +
		`</GetCookieResponse></s:Body></s:Envelope>`
}

var (
	releaseX86 = fixtureUpdate{
		internalID: "307700497",
		updateID:   "4b95a4cd-d471-45c8-bd01-9cd448dfda94",
		moniker:    "Microsoft.MinecraftUWP_1.21.4101.0_x86__8wekyb3d8bbwe",
	}
	releaseX64 = fixtureUpdate{
		internalID: "307700498",
		updateID:   "7fb4ac2a-5f8e-4c4e-9b0e-0f2c1c7a8e11",
		moniker:    "Microsoft.MinecraftUWP_1.21.4101.0_x64__8wekyb3d8bbwe",
	}
	servicesFramework = fixtureUpdate{
		internalID: "300000001",
		updateID:   "0b3d8f2e-1111-4c4e-9b0e-0f2c1c7a8e22",
		moniker:    "Microsoft.Services.Store.Engagement_10.0.23012.0_x64__8wekyb3d8bbwe",
	}
)
