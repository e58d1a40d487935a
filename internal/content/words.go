package content

import "kidlearn/internal/models"

const unsplash = "https://images.unsplash.com/"

// readingWords is the starter reading catalog, easiest level first.
var readingWords = []models.ReadingWord{
	{Word: "CAT", Level: 1, ImageURL: unsplash + "photo-1514888286974-6c03e2ca1dba"},
	{Word: "DOG", Level: 1, ImageURL: unsplash + "photo-1552053831-71594a27632d"},
	{Word: "SUN", Level: 1, ImageURL: unsplash + "photo-1506905925346-21bda4d32df4"},
	{Word: "BAT", Level: 1, ImageURL: unsplash + "photo-1578662996442-48f60103fc96"},
	{Word: "HAT", Level: 1, ImageURL: unsplash + "photo-1520639888713-7851133b1ed0"},
	{Word: "CAN", Level: 1, ImageURL: unsplash + "photo-1571115764595-644a1f56a55c"},
	{Word: "RUN", Level: 1, ImageURL: unsplash + "photo-1571019613454-1cb2f99b2d8b"},
	{Word: "FUN", Level: 1, ImageURL: unsplash + "photo-1503454537195-1dcabb73ffb9"},
	{Word: "BUS", Level: 1, ImageURL: unsplash + "photo-1544620347-c4fd4a3d5957"},
	{Word: "CUP", Level: 1, ImageURL: unsplash + "photo-1544966503-7cc5ac882d5f"},
	{Word: "PEN", Level: 1, ImageURL: unsplash + "photo-1586953208448-b95a79798f07"},
	{Word: "BED", Level: 1, ImageURL: unsplash + "photo-1505693416388-ac5ce068fe85"},

	{Word: "FISH", Level: 2, ImageURL: unsplash + "photo-1535591273668-578e31182c4f"},
	{Word: "BIRD", Level: 2, ImageURL: unsplash + "photo-1552728089-57bdde30beb3"},
	{Word: "TREE", Level: 2, ImageURL: unsplash + "photo-1441974231531-c6227db76b6e"},
	{Word: "BOOK", Level: 2, ImageURL: unsplash + "photo-1481627834876-b7833e8f5570"},
	{Word: "BALL", Level: 2, ImageURL: unsplash + "photo-1594736797933-d0bd1aebf67c"},
	{Word: "PLAY", Level: 2, ImageURL: unsplash + "photo-1503454537195-1dcabb73ffb9"},
	{Word: "JUMP", Level: 2, ImageURL: unsplash + "photo-1571019613454-1cb2f99b2d8b"},
	{Word: "HELP", Level: 2, ImageURL: unsplash + "photo-1559027615-cd4628902d4a"},
	{Word: "CAKE", Level: 2, ImageURL: unsplash + "photo-1558618047-3c8c76ca7d13"},
	{Word: "DUCK", Level: 2, ImageURL: unsplash + "photo-1551196007-2b6c0afbc0dd"},
	{Word: "FROG", Level: 2, ImageURL: unsplash + "photo-1459262838948-3e2de6c1ec80"},
	{Word: "MILK", Level: 2, ImageURL: unsplash + "photo-1563636619-e9143da7973b"},
	{Word: "RAIN", Level: 2, ImageURL: unsplash + "photo-1515694346937-94d85e41e6f0"},
	{Word: "STAR", Level: 2, ImageURL: unsplash + "photo-1419242902214-272b3f66ee7a"},
	{Word: "MOON", Level: 2, ImageURL: unsplash + "photo-1518837695005-2083093ee35b"},

	{Word: "HOUSE", Level: 3, ImageURL: unsplash + "photo-1570129477492-45c003edd2be"},
	{Word: "PLANT", Level: 3, ImageURL: unsplash + "photo-1416879595882-3373a0480b5b"},
	{Word: "WATER", Level: 3, ImageURL: unsplash + "photo-1544161515-4ab6ce6db874"},
	{Word: "APPLE", Level: 3, ImageURL: unsplash + "photo-1560806887-1e4cd0b6cbd6"},
	{Word: "TRAIN", Level: 3, ImageURL: unsplash + "photo-1544620347-c4fd4a3d5957"},
	{Word: "BEACH", Level: 3, ImageURL: unsplash + "photo-1507525428034-b723cf961d3e"},
	{Word: "HORSE", Level: 3, ImageURL: unsplash + "photo-1449824913935-59a10b8d2000"},
	{Word: "BREAD", Level: 3, ImageURL: unsplash + "photo-1549931319-a545dcf3bc73"},
	{Word: "PIZZA", Level: 3, ImageURL: unsplash + "photo-1513104890138-7c749659a591"},
	{Word: "MUSIC", Level: 3, ImageURL: unsplash + "photo-1493225457124-a3eb161ffa5f"},
	{Word: "SMILE", Level: 3, ImageURL: unsplash + "photo-1552053831-71594a27632d"},
	{Word: "CHAIR", Level: 3, ImageURL: unsplash + "photo-1506439773649-6e0eb8cfb237"},

	{Word: "FLOWER", Level: 4, ImageURL: unsplash + "photo-1490750967868-88aa4486c946"},
	{Word: "BRIDGE", Level: 4, ImageURL: unsplash + "photo-1507003211169-0a1dd7228f2d"},
	{Word: "GARDEN", Level: 4, ImageURL: unsplash + "photo-1416879595882-3373a0480b5b"},
	{Word: "CASTLE", Level: 4, ImageURL: unsplash + "photo-1519046904884-53103b34b206"},
	{Word: "RABBIT", Level: 4, ImageURL: unsplash + "photo-1585110396000-c9ffd4e4b308"},
	{Word: "BRANCH", Level: 4, ImageURL: unsplash + "photo-1441974231531-c6227db76b6e"},
	{Word: "SPIDER", Level: 4, ImageURL: unsplash + "photo-1478359844494-1092259d93e4"},
	{Word: "SWITCH", Level: 4, ImageURL: unsplash + "photo-1558618047-3c8c76ca7d13"},
	{Word: "SCHOOL", Level: 4, ImageURL: unsplash + "photo-1580582932707-520aed937b7b"},
	{Word: "SUMMER", Level: 4, ImageURL: unsplash + "photo-1506905925346-21bda4d32df4"},
	{Word: "ORANGE", Level: 4, ImageURL: unsplash + "photo-1547036967-23d11aacaee0"},
	{Word: "JUNGLE", Level: 4, ImageURL: unsplash + "photo-1441974231531-c6227db76b6e"},

	{Word: "ELEPHANT", Level: 5, ImageURL: unsplash + "photo-1564760055775-d63b17a55c44"},
	{Word: "DINOSAUR", Level: 5, ImageURL: unsplash + "photo-1578662996442-48f60103fc96"},
	{Word: "BUTTERFLY", Level: 5, ImageURL: unsplash + "photo-1558449028-b53a39d100fc"},
	{Word: "MOUNTAIN", Level: 5, ImageURL: unsplash + "photo-1506905925346-21bda4d32df4"},
	{Word: "SANDWICH", Level: 5, ImageURL: unsplash + "photo-1539252554453-80ab65ce3586"},
	{Word: "UMBRELLA", Level: 5, ImageURL: unsplash + "photo-1515694346937-94d85e41e6f0"},
	{Word: "COMPUTER", Level: 5, ImageURL: unsplash + "photo-1488590528505-98d2b5aba04b"},
	{Word: "AIRPLANE", Level: 5, ImageURL: unsplash + "photo-1436491865332-7a61a109cc05"},
	{Word: "BIRTHDAY", Level: 5, ImageURL: unsplash + "photo-1558618047-3c8c76ca7d13"},
	{Word: "FAVORITE", Level: 5, ImageURL: unsplash + "photo-1552728089-57bdde30beb3"},
	{Word: "HOSPITAL", Level: 5, ImageURL: unsplash + "photo-1551601651-2a8555f1a136"},
	{Word: "UNIVERSE", Level: 5, ImageURL: unsplash + "photo-1518837695005-2083093ee35b"},
}
